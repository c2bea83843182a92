package assistant

import (
	"context"
	"fmt"

	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/utils/platformerrors"
)

// Router dispatches a parsed tool call to its persistence effect. Each call
// produces at most one effect; final_answer produces none.
type Router struct {
	widgets widget.Service
}

// NewRouter constructs the tool router.
func NewRouter(widgets widget.Service) *Router {
	return &Router{widgets: widgets}
}

// Route applies the tool call on behalf of ownerID. editTarget is the widget
// id being edited, or empty when the session is not in edit mode.
func (r *Router) Route(ctx context.Context, ownerID, editTarget string, call *ToolCall) (*TurnResult, error) {
	switch call.Tool {
	case ToolCreateWidget:
		return r.create(ctx, ownerID, call.Parameters)
	case ToolUpdateWidget:
		return r.update(ctx, ownerID, editTarget, call.Parameters)
	case ToolFinalAnswer:
		return &TurnResult{Message: call.Parameters.Message, Tool: ToolFinalAnswer}, nil
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"model response names an unknown tool", nil, "assistant-route-tool-001")
	}
}

func (r *Router) create(ctx context.Context, ownerID string, params ToolParameters) (*TurnResult, error) {
	w, err := r.widgets.Create(ctx, widget.CreateParams{
		OwnerID:     ownerID,
		Type:        widget.Type(params.Type),
		Title:       params.Title,
		Preferences: params.Preferences,
	})
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Message: fmt.Sprintf("I've created the %q widget for you.", w.Title),
		Tool:    ToolCreateWidget,
		Widget:  w,
	}, nil
}

func (r *Router) update(ctx context.Context, ownerID, editTarget string, params ToolParameters) (*TurnResult, error) {
	if editTarget == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"no widget is being edited", nil, "assistant-route-target-001")
	}

	w, err := r.widgets.Update(ctx, widget.UpdateParams{
		OwnerID:     ownerID,
		ID:          editTarget,
		Title:       params.Title,
		Preferences: params.Preferences,
	})
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Message: fmt.Sprintf("I've updated the %q widget.", w.Title),
		Tool:    ToolUpdateWidget,
		Widget:  w,
	}, nil
}
