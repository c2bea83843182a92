package handlers

import (
	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/realtime"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Widget      *WidgetHandler
	Chat        *ChatHandler
	Integration *IntegrationHandler
	Events      *realtime.WebSocketHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	widgetService widget.Service,
	sessionStore *conversation.Store,
	assistantService assistant.Service,
	speech Synthesizer,
	crm CRMQuerier,
	tools ToolRunner,
	hub *realtime.Hub,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Widget:      NewWidgetHandler(widgetService, log),
		Chat:        NewChatHandler(sessionStore, assistantService, log),
		Integration: NewIntegrationHandler(speech, crm, tools, log),
		Events:      realtime.NewWebSocketHandler(hub, log),
	}
}
