package requests

// CreateWidgetRequest represents a request to create a widget.
type CreateWidgetRequest struct {
	Type        string         `json:"type" binding:"required" validate:"required,oneof=salesforce note pica"`
	Title       string         `json:"title" binding:"required" validate:"required"`
	Preferences map[string]any `json:"preferences" binding:"required" validate:"required"`
}

// UpdateWidgetRequest represents a partial widget edit. An omitted title
// keeps the stored one; preferences are merged over the stored map.
type UpdateWidgetRequest struct {
	Title       string         `json:"title,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}
