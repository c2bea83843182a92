// Package realtime fans widget change events out to websocket subscribers so
// dashboards re-render without re-fetching.
package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/metrics"
)

// Event types sent over the change feed.
const (
	EventWidgetCreated = "widget.created"
	EventWidgetUpdated = "widget.updated"
	EventWidgetDeleted = "widget.deleted"
)

// Event is one entry on the widget change feed. Consumers apply it by id:
// replace-or-append on created/updated, remove on deleted.
type Event struct {
	Type     string         `json:"type"`
	WidgetID string         `json:"widget_id"`
	Widget   *widget.Widget `json:"widget,omitempty"`
}

// Subscription is one subscriber's view of the feed. Events arrive on C;
// slow consumers lose events rather than blocking publishers.
type Subscription struct {
	C       chan Event
	ownerID string
	hub     *Hub
}

// Close removes the subscription from the hub.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub tracks per-owner subscribers and implements widget.Publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription]struct{}
	log         zerolog.Logger
}

// NewHub constructs the hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscription]struct{}),
		log:         log.With().Str("component", "realtime-hub").Logger(),
	}
}

// Subscribe registers a new subscriber for the owner's widgets.
func (h *Hub) Subscribe(ownerID string) *Subscription {
	sub := &Subscription{
		C:       make(chan Event, 16),
		ownerID: ownerID,
		hub:     h,
	}

	h.mu.Lock()
	if h.subscribers[ownerID] == nil {
		h.subscribers[ownerID] = make(map[*Subscription]struct{})
	}
	h.subscribers[ownerID][sub] = struct{}{}
	total := h.count()
	h.mu.Unlock()

	metrics.RealtimeSubscribers.Set(float64(total))
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if subs, ok := h.subscribers[sub.ownerID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.subscribers, sub.ownerID)
		}
	}
	total := h.count()
	h.mu.Unlock()

	metrics.RealtimeSubscribers.Set(float64(total))
}

// count must be called with the lock held.
func (h *Hub) count() int {
	n := 0
	for _, subs := range h.subscribers {
		n += len(subs)
	}
	return n
}

// WidgetCreated implements widget.Publisher.
func (h *Hub) WidgetCreated(w *widget.Widget) {
	h.publish(w.OwnerID, Event{Type: EventWidgetCreated, WidgetID: w.ID, Widget: w})
}

// WidgetUpdated implements widget.Publisher.
func (h *Hub) WidgetUpdated(w *widget.Widget) {
	h.publish(w.OwnerID, Event{Type: EventWidgetUpdated, WidgetID: w.ID, Widget: w})
}

// WidgetDeleted implements widget.Publisher.
func (h *Hub) WidgetDeleted(ownerID, id string) {
	h.publish(ownerID, Event{Type: EventWidgetDeleted, WidgetID: id})
}

// publish delivers the event to every subscriber of the owner. Delivery is
// best effort: a full subscriber buffer drops the event.
func (h *Hub) publish(ownerID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[ownerID] {
		select {
		case sub.C <- event:
		default:
			h.log.Warn().
				Str("event", event.Type).
				Str("widget_id", event.WidgetID).
				Msg("dropping event for slow subscriber")
		}
	}
}

// Ensure interface compliance.
var _ widget.Publisher = (*Hub)(nil)
