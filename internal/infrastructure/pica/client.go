// Package pica proxies generation prompts to the Pica tool API, which backs
// the generic tool-backed widget type.
package pica

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"dashboard-server/internal/config"
	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/utils/platformerrors"
)

// Client calls the Pica generate endpoint.
type Client struct {
	httpClient *resty.Client
	maxSteps   int
}

// NewClient creates a Resty-backed client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(cfg.PicaBaseURL).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(cfg.PicaAPIKey).
			SetTimeout(60 * time.Second),
		maxSteps: cfg.PicaMaxSteps,
	}
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Tool     string `json:"tool,omitempty"`
	MaxSteps int    `json:"maxSteps"`
}

// Generate runs a prompt through the Pica tool and returns the raw result
// document. A non-positive maxSteps falls back to the configured default.
func (c *Client) Generate(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error) {
	if maxSteps <= 0 {
		maxSteps = c.maxSteps
	}

	var result map[string]any

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Prompt:   prompt,
			Tool:     tool,
			MaxSteps: maxSteps,
		}).
		SetResult(&result).
		Post("/api/v1/generate")

	metrics.ProviderDuration.WithLabelValues("pica").Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"pica generate request failed", err, "pica-generate-001")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"pica generate failed: "+resp.Status(), nil, "pica-generate-002")
	}

	return result, nil
}
