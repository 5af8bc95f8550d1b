package speech

import (
	"accessible-tiles/pkg/api"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscription - личный канал подписчика.
type Subscription struct {
	C       chan api.ServerResponse
	verbose bool
}

// Hub рассылает речь и звуки подписчикам (клиентам моста).
// Реализует domain.Reporter и domain.SoundPlayer; каждое сообщение
// дублируется в лог.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	log         Log
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]struct{}),
		now:         time.Now,
	}
}

// Subscribe создает канал для нового клиента.
// verbose=true - получать также сообщения "только в лог".
func (h *Hub) Subscribe(verbose bool) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &Subscription{C: make(chan api.ServerResponse, 100), verbose: verbose}
	h.subscribers[sub] = struct{}{}
	return sub
}

// Unsubscribe удаляет клиента и закрывает его канал.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.C)
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) Report(text string, spoken bool) {
	h.log.Report(text, spoken)
	h.broadcast(api.ServerResponse{
		Type:   api.MessageSpeech,
		Text:   text,
		Spoken: spoken,
	})
}

func (h *Hub) PlaySound(cue string) {
	h.log.PlaySound(cue)
	h.broadcast(api.ServerResponse{
		Type:   api.MessageSound,
		Cue:    cue,
		Spoken: true,
	})
}

func (h *Hub) broadcast(msg api.ServerResponse) {
	msg.ID = uuid.NewString()
	msg.Timestamp = h.now().UnixMilli()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		if !msg.Spoken && !sub.verbose {
			continue
		}
		select {
		case sub.C <- msg:
		default:
			// Пропускаем медленных клиентов
		}
	}
}
