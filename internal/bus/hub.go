// Package bus fans live-session events out to render surfaces. Publishing
// never blocks the tracker: a subscriber that cannot keep up loses events,
// which is harmless because every SYNC_SEGMENTS carries the full snapshot.
package bus

import (
	"fsd/internal/models"
	"sync"
)

type EventType string

const (
	EventSyncSegments EventType = "SYNC_SEGMENTS"
	EventHide         EventType = "HIDE"
)

type Event struct {
	Type    EventType            `json:"type"`
	Payload *models.LiveSnapshot `json:"payload,omitempty"`
}

const subscriberBuffer = 16

type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a receive channel and a cancel func. Cancel is
// idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to all current subscribers, dropping it for
// any whose buffer is full.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
