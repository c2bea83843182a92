package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "dashboard-server/dashboard-api"
)

// GetTracer returns the tracer for the dashboard-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// WidgetAttributes returns common attributes for widget spans.
func WidgetAttributes(widgetID, widgetType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("widget.id", widgetID),
		attribute.String("widget.type", widgetType),
	}
}

// StartTurnSpan starts a new span for an assistant turn.
func StartTurnSpan(ctx context.Context, sessionID string, editing bool) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "assistant.turn",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("turn.session_id", sessionID),
			attribute.Bool("turn.editing", editing),
		),
	)
	return ctx, span
}

// StartWidgetSpan starts a new span for a widget persistence operation.
func StartWidgetSpan(ctx context.Context, operation, widgetID, widgetType string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "widget."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(WidgetAttributes(widgetID, widgetType)...),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
