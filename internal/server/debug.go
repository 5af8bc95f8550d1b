package server

import (
	"accessible-tiles/internal/engine"
	"accessible-tiles/internal/tracker"
	"encoding/json"
	"net/http"
)

// DebugHandler отдает внутреннее состояние движка. Все чтения идут через
// Inspect, то есть на логическом потоке.
type DebugHandler struct {
	Engine Engine
}

func NewDebugHandler(e Engine) *DebugHandler {
	return &DebugHandler{Engine: e}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.inspect(func(s *engine.Service) any {
		return s.Snapshot()
	}))
	mux.HandleFunc("/debug/registry", h.inspect(func(s *engine.Service) any {
		snap := s.Snapshot()
		return registryView{
			Location:        snap.Location,
			Category:        snap.Category,
			Object:          snap.Object,
			SortByProximity: snap.SortByProximity,
			Categories:      snap.Registry,
		}
	}))
	mux.HandleFunc("/debug/movement", h.inspect(func(s *engine.Service) any {
		return s.Movement().Snapshot()
	}))
	mux.HandleFunc("/debug/navigation", h.inspect(func(s *engine.Service) any {
		return s.Tracker().NavigationSnapshot()
	}))
}

// registryView - /debug/registry: курсор и содержимое реестра
type registryView struct {
	Location        string                 `json:"location"`
	Category        string                 `json:"category,omitempty"`
	Object          string                 `json:"object,omitempty"`
	SortByProximity bool                   `json:"sort_by_proximity"`
	Categories      []tracker.CategoryView `json:"categories"`
}

func (h *DebugHandler) inspect(fn func(s *engine.Service) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := h.Engine.Inspect(fn)
		if !ok {
			http.Error(w, "Engine is not running", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, data)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (локальная debug-страница)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("null"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
