package assistant

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/infrastructure/observability"
	"dashboard-server/internal/utils/platformerrors"
)

// Service runs assistant turns against a conversation session.
type Service interface {
	// Turn executes one assistant turn: append the user message, call the
	// model, route the tool call, append the assistant message.
	Turn(ctx context.Context, session *conversation.Session, input string) (*TurnResult, error)

	// Summarize condenses the session's cached widget contents.
	Summarize(ctx context.Context, session *conversation.Session) (string, error)
}

type service struct {
	completer Completer
	router    *Router
	widgets   widget.Service
	log       zerolog.Logger
}

// NewService constructs the assistant service.
func NewService(completer Completer, router *Router, widgets widget.Service, log zerolog.Logger) Service {
	return &service{
		completer: completer,
		router:    router,
		widgets:   widgets,
		log:       log.With().Str("component", "assistant-service").Logger(),
	}
}

func (s *service) Turn(ctx context.Context, session *conversation.Session, input string) (*TurnResult, error) {
	if err := session.BeginTurn(ctx, input); err != nil {
		return nil, err
	}

	editTarget, editing := session.EditTarget()

	ctx, span := observability.StartTurnSpan(ctx, session.ID, editing)
	defer span.End()

	// Everything between BeginTurn and EndTurn is the in-flight turn. A
	// failure ends the turn without an assistant message and without
	// clearing the edit target, so the user can retry or cancel.
	var currentWidget *widget.Widget
	if editing {
		w, err := s.widgets.Get(ctx, session.OwnerID, editTarget)
		if err != nil {
			return nil, s.failTurn(session, span, "none", err)
		}
		currentWidget = w
	}

	raw, err := s.completer.CompleteTurn(ctx, BuildSystemPrompt(currentWidget), session.Messages())
	if err != nil {
		return nil, s.failTurn(session, span, "none", err)
	}

	call, err := ParseToolCall(ctx, raw)
	if err != nil {
		s.log.Warn().Str("session_id", session.ID).Str("raw", raw).Msg("unparseable model response")
		return nil, s.failTurn(session, span, "none", err)
	}

	result, err := s.router.Route(ctx, session.OwnerID, editTarget, call)
	if err != nil {
		return nil, s.failTurn(session, span, string(call.Tool), err)
	}

	session.EndTurn(result.Message, result.Tool == ToolUpdateWidget)
	metrics.TurnsTotal.WithLabelValues(string(result.Tool), "ok").Inc()

	s.log.Info().
		Str("session_id", session.ID).
		Str("tool", string(result.Tool)).
		Msg("turn completed")
	return result, nil
}

func (s *service) Summarize(ctx context.Context, session *conversation.Session) (string, error) {
	contents := session.Contents()
	if len(contents) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"no widget contents recorded for this session", nil, "assistant-summary-empty-001")
	}

	summary, err := s.completer.Summarize(ctx, conversation.BuildSummaryContent(contents))
	if err != nil {
		return "", err
	}
	return summary, nil
}

func (s *service) failTurn(session *conversation.Session, span trace.Span, tool string, err error) error {
	session.EndTurn("", false)
	observability.RecordError(span, err)
	metrics.TurnsTotal.WithLabelValues(tool, "error").Inc()
	return err
}
