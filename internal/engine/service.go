// Package engine - точка сборки: связывает мир, движение по сетке и трекер
// объектов, разбирает команды моста и ведет все на одном логическом потоке.
package engine

import (
	"accessible-tiles/internal/config"
	"accessible-tiles/internal/domain"
	"accessible-tiles/internal/engine/handlers"
	"accessible-tiles/internal/engine/handlers/actions"
	"accessible-tiles/internal/systems"
	"accessible-tiles/internal/timer"
	"accessible-tiles/internal/tracker"
	"accessible-tiles/pkg/api"
	"accessible-tiles/pkg/logger"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrNilConfig     = errors.New("engine: config is required")
	ErrUnknownAction = errors.New("engine: unknown action")
)

// Host - игровой мир, которым управляет сервис.
type Host interface {
	domain.World
	domain.Pathfinder
	domain.CharacterLookup
	// Tick продвигает мир на один тик; true - на этом тике завершился переход.
	Tick() bool
}

// Sink - куда уходят речь и звуки.
type Sink interface {
	domain.Reporter
	domain.SoundPlayer
}

type Deps struct {
	Host      Host
	Output    Sink
	Providers []tracker.Provider
	Scheduler timer.Scheduler
}

// Service не потокобезопасен: все методы вызываются с логического потока
// (см. Runner).
type Service struct {
	cfg      *config.Config
	host     Host
	out      Sink
	movement *systems.GridMovement
	tracker  *tracker.Tracker

	held       map[string]bool
	gridActive bool
	ready      bool

	lastLocation  string
	lastSignature int

	handlers map[string]handlers.HandlerFunc

	log *logrus.Entry
}

func NewService(cfg *config.Config, deps Deps) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	movement, err := systems.NewGridMovement(cfg, systems.MovementDeps{
		World:      deps.Host,
		Pathfinder: deps.Host,
		Sounds:     deps.Output,
		Output:     deps.Output,
		Scheduler:  deps.Scheduler,
	})
	if err != nil {
		return nil, fmt.Errorf("grid movement: %w", err)
	}

	s := &Service{
		cfg:        cfg,
		host:       deps.Host,
		out:        deps.Output,
		movement:   movement,
		held:       make(map[string]bool),
		gridActive: cfg.GridMovementActive,
		handlers:   make(map[string]handlers.HandlerFunc),
		log:        logger.Log.WithField("component", "engine"),
	}

	s.tracker, err = tracker.New(cfg, tracker.Deps{
		World:        deps.Host,
		Pathfinder:   deps.Host,
		Characters:   deps.Host,
		Output:       deps.Output,
		Scheduler:    deps.Scheduler,
		Providers:    deps.Providers,
		StepInterval: s.stepInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	s.registerHandlers()
	return s, nil
}

func (s *Service) registerHandlers() {
	s.handlers[api.ActionKeyDown] = handlers.WithPayload(actions.HandleKeyDown)
	s.handlers[api.ActionKeyUp] = handlers.WithPayload(actions.HandleKeyUp)
	s.handlers[api.ActionSaveLoaded] = handlers.WithEmptyPayload(actions.HandleSaveLoaded)
}

// Handle выполняет команду моста.
func (s *Service) Handle(cmd api.ClientCommand) error {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	if err := handler(handlers.Context{Input: s}, cmd.Payload); err != nil {
		return fmt.Errorf("%s: %w", cmd.Action, err)
	}
	return nil
}

func (s *Service) stepInterval() time.Duration {
	return s.movement.CooldownFor(s.host.Player().SpeedBonus())
}

func (s *Service) isHeld(button string) bool {
	return s.held[strings.ToLower(button)]
}

// KeyDown - нажатие кнопки. До загрузки сохранения только запоминаем
// зажатые кнопки.
func (s *Service) KeyDown(button string) {
	button = strings.TrimSpace(button)
	if button == "" {
		return
	}
	s.held[strings.ToLower(button)] = true
	if !s.ready {
		return
	}

	keys := &s.cfg.Keys

	// Пока идет автоходьба, работает только отмена
	if s.host.Player().Controller() != nil {
		if keys.CancelAutoWalking.JustPressed(button, s.isHeld) {
			s.tracker.CancelNavigation()
		}
		return
	}

	if keys.ToggleGridMovement.JustPressed(button, s.isHeld) {
		s.gridActive = !s.gridActive
		s.out.Report(fmt.Sprintf("Grid Movement Status: %s", statusLabel(s.gridActive)), true)
		return
	}

	if s.handleMovement(button) {
		return
	}
	s.handleTracker(button)
}

func (s *Service) KeyUp(button string) {
	delete(s.held, strings.ToLower(strings.TrimSpace(button)))
}

// handleMovement - true, если кнопка относится к движению по сетке
// (даже если шаг сейчас невозможен).
func (s *Service) handleMovement(button string) bool {
	if !s.gridActive || s.cfg.Keys.GridMovementOverride.IsDown(s.isHeld) {
		return false
	}
	dir, ok := s.directionFor(button)
	if !ok {
		return false
	}
	if s.movement.IsWarping() {
		return true
	}
	s.movement.Handle(dir, button)
	return true
}

func (s *Service) directionFor(button string) (domain.Direction, bool) {
	keys := &s.cfg.Keys
	switch {
	case keys.MoveUp.JustPressed(button, s.isHeld):
		return domain.North, true
	case keys.MoveRight.JustPressed(button, s.isHeld):
		return domain.East, true
	case keys.MoveDown.JustPressed(button, s.isHeld):
		return domain.South, true
	case keys.MoveLeft.JustPressed(button, s.isHeld):
		return domain.West, true
	}
	return domain.NoDirection, false
}

// handleTracker - привязки трекера. Сочетания с модификатором проверяются
// раньше одиночных кнопок: "PageUp" срабатывает и при зажатом LeftControl.
func (s *Service) handleTracker(button string) {
	keys := &s.cfg.Keys
	pressed := func(k config.Keybind) bool { return k.JustPressed(button, s.isHeld) }

	switch {
	case pressed(keys.CycleUpCategory):
		s.tracker.Cycle(tracker.AxisCategory, tracker.Backward)
	case pressed(keys.CycleDownCategory):
		s.tracker.Cycle(tracker.AxisCategory, tracker.Forward)
	case pressed(keys.CycleUpObject):
		s.tracker.Cycle(tracker.AxisObject, tracker.Backward)
	case pressed(keys.CycleDownObject):
		s.tracker.Cycle(tracker.AxisObject, tracker.Forward)
	case pressed(keys.ReadSelectedObjectTile):
		s.tracker.Refresh(false)
		s.tracker.ReadSelection(true)
	case pressed(keys.ReadSelectedObject):
		s.tracker.Refresh(false)
		s.tracker.ReadSelection(false)
	case pressed(keys.SwitchSortingMode):
		s.tracker.ToggleSortMode()
	case pressed(keys.MoveToSelectedObject):
		s.tracker.Refresh(false)
		s.tracker.NavigateToSelection()
	}
}

// Tick - один тик хоста: мир, повтор зажатого движения, автообновление реестра.
func (s *Service) Tick() {
	if s.host.Tick() {
		s.Warped()
	}
	if !s.ready {
		return
	}
	s.repeatHeldMovement()
	s.autoRefresh()
}

// repeatHeldMovement повторяет последний шаг, пока его кнопка зажата.
func (s *Service) repeatHeldMovement() {
	if !s.gridActive || s.movement.IsMoving() || s.movement.IsWarping() {
		return
	}
	if s.host.Player().Controller() != nil || s.cfg.Keys.GridMovementOverride.IsDown(s.isHeld) {
		return
	}
	dir, button, ok := s.movement.LastInput()
	if !ok || !s.isHeld(button) {
		return
	}
	s.movement.Handle(dir, button)
}

func (s *Service) autoRefresh() {
	loc := s.host.Location()
	name, signature := loc.Name(), loc.ObjectSignature()
	if name == s.lastLocation && signature == s.lastSignature {
		return
	}
	s.lastLocation, s.lastSignature = name, signature
	if !s.cfg.AutoRefresh {
		return
	}
	s.log.WithFields(logrus.Fields{
		"location":  name,
		"signature": signature,
	}).Debug("Objects changed, refreshing")
	s.tracker.Refresh(false)
}

// Warped - переход на другую карту завершен. Автопуть старой карты
// завершается до пересборки реестра.
func (s *Service) Warped() {
	s.movement.WarpCompleted()
	s.tracker.EndNavigation()
	if !s.ready {
		return
	}
	s.tracker.Refresh(true)
	s.remember()
}

// SaveLoaded - первичная сборка реестра после загрузки сохранения.
func (s *Service) SaveLoaded() {
	s.ready = true
	s.tracker.Refresh(true)
	s.remember()
	s.log.WithField("location", s.lastLocation).Info("Save loaded")
}

func (s *Service) remember() {
	loc := s.host.Location()
	s.lastLocation, s.lastSignature = loc.Name(), loc.ObjectSignature()
}

func (s *Service) Movement() *systems.GridMovement { return s.movement }
func (s *Service) Tracker() *tracker.Tracker       { return s.tracker }
func (s *Service) GridActive() bool                { return s.gridActive }
func (s *Service) Ready() bool                     { return s.ready }

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// Snapshot - состояние для отладочных эндпоинтов.
type Snapshot struct {
	Ready           bool                       `json:"ready"`
	GridActive      bool                       `json:"grid_active"`
	Location        string                     `json:"location"`
	Player          domain.Tile                `json:"player"`
	Facing          string                     `json:"facing"`
	Held            []string                   `json:"held,omitempty"`
	Category        string                     `json:"category,omitempty"`
	Object          string                     `json:"object,omitempty"`
	SortByProximity bool                       `json:"sort_by_proximity"`
	Movement        systems.MovementSnapshot   `json:"movement"`
	Navigation      tracker.NavigationSnapshot `json:"navigation"`
	Registry        []tracker.CategoryView     `json:"registry"`
}

func (s *Service) Snapshot() Snapshot {
	agent := s.host.Player()
	category, object := s.tracker.Cursor()
	held := make([]string, 0, len(s.held))
	for b := range s.held {
		held = append(held, b)
	}
	sort.Strings(held)

	return Snapshot{
		Ready:           s.ready,
		GridActive:      s.gridActive,
		Location:        s.host.Location().Name(),
		Player:          domain.AgentTile(agent),
		Facing:          agent.Facing().String(),
		Held:            held,
		Category:        category,
		Object:          object,
		SortByProximity: s.tracker.SortByProximity(),
		Movement:        s.movement.Snapshot(),
		Navigation:      s.tracker.NavigationSnapshot(),
		Registry:        s.tracker.Registry().View(),
	}
}
