package requests

// MessageRequest represents one user turn.
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// EditRequest sets the session's edit target.
type EditRequest struct {
	WidgetID string `json:"widget_id" binding:"required"`
}

// ContentRequest records a widget's rendered content into the session cache.
type ContentRequest struct {
	WidgetID string `json:"widget_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content" binding:"required"`
}
