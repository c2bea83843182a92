package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/interfaces/httpserver/requests"
	"dashboard-server/internal/interfaces/httpserver/responses"
	"dashboard-server/internal/utils/platformerrors"
)

// ChatHandler exposes HTTP entrypoints for conversation sessions and turns.
type ChatHandler struct {
	store     *conversation.Store
	assistant assistant.Service
	log       zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(store *conversation.Store, assistantService assistant.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		store:     store,
		assistant: assistantService,
		log:       log.With().Str("handler", "chat").Logger(),
	}
}

// CreateSession handles POST /v1/chat/sessions
// @Summary Create a conversation session
// @Tags Chat
// @Produce json
// @Success 201 {object} responses.SessionResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/chat/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.store.Create(c.Request.Context(), auth.OwnerID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, responses.MapSessionToResponse(session))
}

// GetSession handles GET /v1/chat/sessions/:id
// @Summary Get a conversation session
// @Tags Chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} responses.SessionResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	c.JSON(http.StatusOK, responses.MapSessionToResponse(session))
}

// SetEdit handles POST /v1/chat/sessions/:id/edit
// @Summary Set the session's edit target
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body requests.EditRequest true "Widget to edit"
// @Success 200 {object} responses.SessionResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id}/edit [post]
func (h *ChatHandler) SetEdit(c *gin.Context) {
	var req requests.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "chat-edit-bind-001")
		return
	}

	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	if err := session.StartEdit(c.Request.Context(), req.WidgetID); err != nil {
		responses.HandleError(c, err, "failed to set edit target")
		return
	}

	c.JSON(http.StatusOK, responses.MapSessionToResponse(session))
}

// ClearEdit handles DELETE /v1/chat/sessions/:id/edit
// @Summary Clear the session's edit target
// @Tags Chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} responses.SessionResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id}/edit [delete]
func (h *ChatHandler) ClearEdit(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	if err := session.CancelEdit(c.Request.Context()); err != nil {
		responses.HandleError(c, err, "failed to clear edit target")
		return
	}

	c.JSON(http.StatusOK, responses.MapSessionToResponse(session))
}

// PostMessage handles POST /v1/chat/sessions/:id/messages
// @Summary Run one assistant turn
// @Description Appends the user message, calls the model, routes the tool call and returns the outcome. Rejected with 409 while another turn is in flight.
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body requests.MessageRequest true "User message"
// @Success 200 {object} responses.TurnResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id}/messages [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req requests.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "chat-message-bind-001")
		return
	}

	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	result, err := h.assistant.Turn(c.Request.Context(), session, req.Message)
	if err != nil {
		responses.HandleError(c, err, "turn failed")
		return
	}

	c.JSON(http.StatusOK, responses.MapTurnToResponse(result))
}

// RecordContent handles POST /v1/chat/sessions/:id/contents
// @Summary Record a widget's rendered content
// @Description Caches the widget's last rendered content in the session for later summarization.
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body requests.ContentRequest true "Widget content"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id}/contents [post]
func (h *ChatHandler) RecordContent(c *gin.Context) {
	var req requests.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "chat-content-bind-001")
		return
	}

	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	session.RecordContent(conversation.WidgetContent{
		ID:      req.WidgetID,
		Title:   req.Title,
		Type:    req.Type,
		Content: req.Content,
	})

	c.Status(http.StatusNoContent)
}

// Summarize handles POST /v1/chat/sessions/:id/summary
// @Summary Summarize the session's widgets
// @Tags Chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} responses.SummaryResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/chat/sessions/{id}/summary [post]
func (h *ChatHandler) Summarize(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	summary, err := h.assistant.Summarize(c.Request.Context(), session)
	if err != nil {
		responses.HandleError(c, err, "failed to summarize widgets")
		return
	}

	c.JSON(http.StatusOK, responses.SummaryResponse{Summary: summary})
}
