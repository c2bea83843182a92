package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// WebSocketHandler upgrades feed requests and streams hub events to the
// connected dashboard.
type WebSocketHandler struct {
	hub *Hub
	log zerolog.Logger
}

// NewWebSocketHandler creates a new websocket handler.
func NewWebSocketHandler(hub *Hub, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		log: log.With().Str("component", "realtime-ws").Logger(),
	}
}

// Serve upgrades the connection and forwards the owner's widget events until
// the client disconnects.
func (h *WebSocketHandler) Serve(ownerID string, w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer ws.Close(websocket.StatusNormalClosure, "feed closed")

	sub := h.hub.Subscribe(ownerID)
	defer sub.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read loop exists only to notice the client closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-sub.C:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("failed to marshal event")
				continue
			}
			if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
				if websocket.CloseStatus(err) == -1 {
					h.log.Debug().Err(err).Msg("websocket write error")
				}
				return
			}
		}
	}
}
