package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/interfaces/httpserver/requests"
	"dashboard-server/internal/interfaces/httpserver/responses"
	"dashboard-server/internal/utils/platformerrors"
)

// WidgetHandler exposes HTTP entrypoints for the Widgets API.
type WidgetHandler struct {
	service  widget.Service
	validate *validator.Validate
	log      zerolog.Logger
}

// NewWidgetHandler constructs the handler.
func NewWidgetHandler(service widget.Service, log zerolog.Logger) *WidgetHandler {
	return &WidgetHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With().Str("handler", "widget").Logger(),
	}
}

// List handles GET /v1/widgets
// @Summary List widgets
// @Description Retrieves all widgets owned by the caller, most recently updated first
// @Tags Widgets
// @Produce json
// @Success 200 {object} responses.WidgetListResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/widgets [get]
func (h *WidgetHandler) List(c *gin.Context) {
	widgets, err := h.service.List(c.Request.Context(), auth.OwnerID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to list widgets")
		return
	}

	c.JSON(http.StatusOK, responses.MapWidgetsToResponse(widgets))
}

// Get handles GET /v1/widgets/:id
// @Summary Get a widget
// @Tags Widgets
// @Produce json
// @Param id path string true "Widget ID"
// @Success 200 {object} responses.WidgetPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/widgets/{id} [get]
func (h *WidgetHandler) Get(c *gin.Context) {
	w, err := h.service.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get widget")
		return
	}

	c.JSON(http.StatusOK, responses.FromDomain(w))
}

// Create handles POST /v1/widgets
// @Summary Create a widget
// @Tags Widgets
// @Accept json
// @Produce json
// @Param request body requests.CreateWidgetRequest true "Widget to create"
// @Success 201 {object} responses.WidgetPayload
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/widgets [post]
func (h *WidgetHandler) Create(c *gin.Context) {
	var req requests.CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "widget-create-bind-001")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid widget payload", "widget-create-validate-001")
		return
	}

	w, err := h.service.Create(c.Request.Context(), widget.CreateParams{
		OwnerID:     auth.OwnerID(c),
		Type:        widget.Type(req.Type),
		Title:       req.Title,
		Preferences: req.Preferences,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create widget")
		return
	}

	c.JSON(http.StatusCreated, responses.FromDomain(w))
}

// Update handles PATCH /v1/widgets/:id
// @Summary Update a widget
// @Description Applies a partial edit. The title falls back to the stored title when omitted; preferences are shallow-merged over the stored map.
// @Tags Widgets
// @Accept json
// @Produce json
// @Param id path string true "Widget ID"
// @Param request body requests.UpdateWidgetRequest true "Fields to update"
// @Success 200 {object} responses.WidgetPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/widgets/{id} [patch]
func (h *WidgetHandler) Update(c *gin.Context) {
	var req requests.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "widget-update-bind-001")
		return
	}

	w, err := h.service.Update(c.Request.Context(), widget.UpdateParams{
		OwnerID:     auth.OwnerID(c),
		ID:          c.Param("id"),
		Title:       req.Title,
		Preferences: req.Preferences,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update widget")
		return
	}

	c.JSON(http.StatusOK, responses.FromDomain(w))
}

// Delete handles DELETE /v1/widgets/:id
// @Summary Delete a widget
// @Tags Widgets
// @Param id path string true "Widget ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/widgets/{id} [delete]
func (h *WidgetHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.OwnerID(c), c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete widget")
		return
	}

	c.Status(http.StatusNoContent)
}
