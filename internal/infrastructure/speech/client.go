// Package speech synthesizes audio for widget summaries via ElevenLabs.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"dashboard-server/internal/config"
	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/utils/platformerrors"
)

// Client calls the ElevenLabs text-to-speech API.
type Client struct {
	httpClient *resty.Client
	voiceID    string
	modelID    string
}

// NewClient creates a Resty-backed client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(cfg.ElevenLabsBaseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "audio/mpeg").
			SetHeader("xi-api-key", cfg.ElevenLabsAPIKey).
			SetTimeout(30 * time.Second),
		voiceID: cfg.ElevenLabsVoiceID,
		modelID: cfg.ElevenLabsModelID,
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize shortens the text, renders it to audio and returns the result
// base64-encoded.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	processed := preprocessText(text)

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(synthesisRequest{
			Text:    processed,
			ModelID: c.modelID,
			VoiceSettings: voiceSettings{
				Stability:       0.5,
				SimilarityBoost: 0.5,
			},
		}).
		Post(fmt.Sprintf("/v1/text-to-speech/%s", c.voiceID))

	metrics.ProviderDuration.WithLabelValues("elevenlabs").Observe(time.Since(start).Seconds())

	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"speech synthesis request failed", err, "speech-synthesize-001")
	}
	if resp.IsError() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("speech synthesis failed: %s", resp.Status()), nil, "speech-synthesize-002")
	}

	return base64.StdEncoding.EncodeToString(resp.Body()), nil
}
