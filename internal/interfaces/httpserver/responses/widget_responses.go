package responses

import (
	"dashboard-server/internal/domain/widget"
)

// WidgetPayload is returned to clients.
type WidgetPayload struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   int64          `json:"created_at"`
	UpdatedAt   int64          `json:"updated_at"`
}

// FromDomain maps the domain widget to DTO.
func FromDomain(w *widget.Widget) WidgetPayload {
	return WidgetPayload{
		ID:          w.ID,
		Type:        w.Type.String(),
		Title:       w.Title,
		Preferences: w.Preferences,
		CreatedAt:   w.CreatedAt.Unix(),
		UpdatedAt:   w.UpdatedAt.Unix(),
	}
}

// WidgetListResponse wraps the owner's widgets.
type WidgetListResponse struct {
	Data []WidgetPayload `json:"data"`
}

// MapWidgetsToResponse maps a widget list to the response shape.
func MapWidgetsToResponse(widgets []*widget.Widget) WidgetListResponse {
	data := make([]WidgetPayload, len(widgets))
	for i, w := range widgets {
		data[i] = FromDomain(w)
	}
	return WidgetListResponse{Data: data}
}
