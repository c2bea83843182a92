package realtime

import (
	"testing"

	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/widget"
)

func TestHubDeliversToOwner(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("user-1")
	defer sub.Close()

	hub.WidgetCreated(&widget.Widget{ID: "wdgt_abc", OwnerID: "user-1", Title: "T"})

	select {
	case event := <-sub.C:
		if event.Type != EventWidgetCreated || event.WidgetID != "wdgt_abc" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Widget == nil || event.Widget.Title != "T" {
			t.Errorf("expected widget payload, got %+v", event.Widget)
		}
	default:
		t.Fatal("expected an event")
	}
}

func TestHubScopesByOwner(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	mine := hub.Subscribe("user-1")
	defer mine.Close()
	theirs := hub.Subscribe("user-2")
	defer theirs.Close()

	hub.WidgetUpdated(&widget.Widget{ID: "wdgt_abc", OwnerID: "user-1"})

	if len(mine.C) != 1 {
		t.Errorf("expected 1 event for the owner, got %d", len(mine.C))
	}
	if len(theirs.C) != 0 {
		t.Errorf("expected no events for another owner, got %d", len(theirs.C))
	}
}

func TestHubDeleteEventHasNoPayload(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("user-1")
	defer sub.Close()

	hub.WidgetDeleted("user-1", "wdgt_abc")

	event := <-sub.C
	if event.Type != EventWidgetDeleted || event.WidgetID != "wdgt_abc" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Widget != nil {
		t.Errorf("expected no widget payload on delete, got %+v", event.Widget)
	}
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("user-1")
	defer sub.Close()

	for i := 0; i < cap(sub.C)+5; i++ {
		hub.WidgetDeleted("user-1", "wdgt_abc")
	}

	// Publishing past the buffer must not block or grow the channel.
	if got := len(sub.C); got != cap(sub.C) {
		t.Errorf("expected a full buffer of %d, got %d", cap(sub.C), got)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("user-1")
	sub.Close()

	hub.WidgetDeleted("user-1", "wdgt_abc")

	if len(sub.C) != 0 {
		t.Errorf("expected no events after close, got %d", len(sub.C))
	}
}
