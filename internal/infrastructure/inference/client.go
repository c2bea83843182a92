// Package inference calls the chat-completion provider for assistant turns
// and widget summaries.
package inference

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"dashboard-server/internal/config"
	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/utils/platformerrors"
)

const summarySystemPrompt = "You are a helpful assistant that creates very concise summaries. " +
	"Limit your response to 2-4 sentences, focusing only on the most important information. " +
	"Avoid repetition and unnecessary details."

// Client implements the assistant.Completer interface.
type Client struct {
	api          *openai.Client
	agentModel   string
	summaryModel string
}

// NewClient creates an OpenAI-backed completer.
func NewClient(cfg *config.Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:          openai.NewClientWithConfig(clientCfg),
		agentModel:   cfg.AgentModel,
		summaryModel: cfg.SummaryModel,
	}
}

// CompleteTurn sends the system prompt and conversation history and returns
// the raw assistant text. No retries: a failure is terminal for the turn.
func (c *Client) CompleteTurn(ctx context.Context, systemPrompt string, messages []conversation.Message) (string, error) {
	chat := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chat = append(chat, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range messages {
		chat = append(chat, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.agentModel,
		Messages:    chat,
		Temperature: 0.7,
	})
	metrics.ProviderDuration.WithLabelValues("openai").Observe(time.Since(start).Seconds())

	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion failed", err, "inference-turn-001")
	}
	if len(resp.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned no choices", nil, "inference-turn-002")
	}

	return resp.Choices[0].Message.Content, nil
}

// Summarize condenses pre-formatted widget content into a short summary.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please provide a brief summary of these widgets: " + content},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	metrics.ProviderDuration.WithLabelValues("openai").Observe(time.Since(start).Seconds())

	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"summarization failed", err, "inference-summary-001")
	}
	if len(resp.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"summarization returned no choices", nil, "inference-summary-002")
	}

	return resp.Choices[0].Message.Content, nil
}

// Ensure interface compliance.
var _ assistant.Completer = (*Client)(nil)
