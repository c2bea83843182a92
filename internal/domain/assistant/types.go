// Package assistant implements the chat-driven widget builder: the tool
// catalog exposed to the model, the system prompt, response parsing, and the
// router that turns a parsed tool call into at most one persistence effect.
package assistant

import (
	"context"

	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/domain/widget"
)

// ToolName identifies one of the actions the model may select.
type ToolName string

const (
	ToolCreateWidget ToolName = "create_widget"
	ToolUpdateWidget ToolName = "update_widget"
	ToolFinalAnswer  ToolName = "final_answer"
)

// ToolCall is the structured shape the model must respond with.
type ToolCall struct {
	Tool       ToolName       `json:"tool"`
	Parameters ToolParameters `json:"parameters"`
}

// ToolParameters carries the union of per-tool parameters. Which fields are
// required depends on the tool.
type ToolParameters struct {
	Type        string             `json:"type,omitempty"`
	Title       string             `json:"title,omitempty"`
	Preferences widget.Preferences `json:"preferences,omitempty"`
	Message     string             `json:"message,omitempty"`
}

// TurnResult is the outcome of one assistant turn.
type TurnResult struct {
	Message string         `json:"message"`
	Tool    ToolName       `json:"tool"`
	Widget  *widget.Widget `json:"widgetConfig,omitempty"`
}

// Completer is the model-provider boundary. Implementations live in
// infrastructure and own the transport details.
type Completer interface {
	// CompleteTurn sends the system prompt plus the conversation history and
	// returns the raw assistant text.
	CompleteTurn(ctx context.Context, systemPrompt string, messages []conversation.Message) (string, error)

	// Summarize condenses pre-formatted widget content into a short summary.
	Summarize(ctx context.Context, content string) (string, error)
}
