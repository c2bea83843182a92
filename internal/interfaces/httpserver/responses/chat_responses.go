package responses

import (
	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
)

// SessionResponse describes a conversation session to the client.
type SessionResponse struct {
	ID         string                 `json:"id"`
	State      string                 `json:"state"`
	EditTarget string                 `json:"edit_target,omitempty"`
	Messages   []conversation.Message `json:"messages"`
}

// MapSessionToResponse maps a session to the response shape.
func MapSessionToResponse(s *conversation.Session) SessionResponse {
	target, _ := s.EditTarget()
	return SessionResponse{
		ID:         s.ID,
		State:      string(s.State()),
		EditTarget: target,
		Messages:   s.Messages(),
	}
}

// TurnResponse is the outcome of one assistant turn.
type TurnResponse struct {
	Message      string         `json:"message"`
	Tool         string         `json:"tool"`
	WidgetConfig *WidgetPayload `json:"widgetConfig,omitempty"`
}

// MapTurnToResponse maps a turn result to the response shape.
func MapTurnToResponse(result *assistant.TurnResult) TurnResponse {
	resp := TurnResponse{
		Message: result.Message,
		Tool:    string(result.Tool),
	}
	if result.Widget != nil {
		payload := FromDomain(result.Widget)
		resp.WidgetConfig = &payload
	}
	return resp
}

// SummaryResponse wraps the widget summary text.
type SummaryResponse struct {
	Summary string `json:"summary"`
}
