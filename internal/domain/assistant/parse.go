package assistant

import (
	"context"
	"encoding/json"
	"strings"

	"dashboard-server/internal/utils/platformerrors"
)

// ParseToolCall decodes the model's raw text into a tool call. Output that is
// not valid JSON, names no tool, or names an unknown tool is a turn-level
// failure with no persistence effect.
func ParseToolCall(ctx context.Context, raw string) (*ToolCall, error) {
	cleaned := stripCodeFence(raw)

	var call ToolCall
	if err := json.Unmarshal([]byte(cleaned), &call); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"model response is not valid JSON", err, "assistant-parse-json-001")
	}

	switch call.Tool {
	case ToolCreateWidget, ToolUpdateWidget, ToolFinalAnswer:
	case "":
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"model response names no tool", nil, "assistant-parse-tool-001")
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"model response names an unknown tool", nil, "assistant-parse-tool-002")
	}

	return &call, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// add around JSON despite instructions not to.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
