package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dashboard-server/internal/interfaces/httpserver/requests"
	"dashboard-server/internal/interfaces/httpserver/responses"
	"dashboard-server/internal/utils/platformerrors"
)

// Synthesizer renders text to base64-encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// CRMQuerier proxies SOQL queries to the CRM.
type CRMQuerier interface {
	Query(ctx context.Context, soql string, maxRecords int) ([]map[string]any, error)
}

// ToolRunner proxies generation prompts to the tool provider backing the
// generic widget type.
type ToolRunner interface {
	Generate(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error)
}

// IntegrationHandler exposes the speech, CRM and tool proxy endpoints.
type IntegrationHandler struct {
	speech Synthesizer
	crm    CRMQuerier
	tools  ToolRunner
	log    zerolog.Logger
}

// NewIntegrationHandler constructs the handler.
func NewIntegrationHandler(speech Synthesizer, crm CRMQuerier, tools ToolRunner, log zerolog.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		speech: speech,
		crm:    crm,
		tools:  tools,
		log:    log.With().Str("handler", "integration").Logger(),
	}
}

// Speech handles POST /v1/speech
// @Summary Synthesize speech
// @Description Shortens the text and renders it to base64-encoded audio.
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body requests.SpeechRequest true "Text to synthesize"
// @Success 200 {object} map[string]string
// @Failure 400 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/speech [post]
func (h *IntegrationHandler) Speech(c *gin.Context) {
	var req requests.SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "text is required", "speech-bind-001")
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		responses.HandleError(c, err, "failed to synthesize speech")
		return
	}

	c.JSON(http.StatusOK, gin.H{"audioContent": audio})
}

// SalesforceQuery handles POST /v1/salesforce/query
// @Summary Run a SOQL query
// @Description Exchanges server-held credentials for a token and runs the query against the CRM.
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body requests.SalesforceQueryRequest true "SOQL query"
// @Success 200 {object} map[string]any
// @Failure 400 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/salesforce/query [post]
func (h *IntegrationHandler) SalesforceQuery(c *gin.Context) {
	var req requests.SalesforceQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "query is required", "salesforce-bind-001")
		return
	}

	records, err := h.crm.Query(c.Request.Context(), req.Query, req.MaxRecords)
	if err != nil {
		responses.HandleError(c, err, "failed to query salesforce")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// PicaGenerate handles POST /v1/pica
// @Summary Run a Pica generation prompt
// @Description Passes the prompt through to the Pica generate API and returns the raw result.
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body requests.PicaGenerateRequest true "Generation prompt"
// @Success 200 {object} map[string]any
// @Failure 400 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/pica [post]
func (h *IntegrationHandler) PicaGenerate(c *gin.Context) {
	var req requests.PicaGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "prompt is required", "pica-bind-001")
		return
	}

	result, err := h.tools.Generate(c.Request.Context(), req.Prompt, req.Tool, req.MaxSteps)
	if err != nil {
		responses.HandleError(c, err, "failed to run pica generation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
