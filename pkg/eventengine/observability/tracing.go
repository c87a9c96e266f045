package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span and attribute names.
const (
	SpanDispatch = "eventengine.dispatch"
	SpanHandler  = "eventengine.handler"

	SpanEventPropagationStopped = "propagation.stopped"

	AttrEventType    = "event.type"
	AttrEventID      = "event.id"
	AttrStopAllowed  = "event.stop_allowed"
	AttrHandlerName  = "handler.name"
	AttrWildcard     = "handler.wildcard"
	AttrSubstituted  = "event.substituted"
	AttrHandlerCount = "dispatch.handlers"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span for an entire dispatch.
	// Returns the context with span and the span itself.
	StartDispatchSpan(ctx context.Context, eventType, eventID string, stopAllowed bool) (context.Context, trace.Span)

	// StartHandlerSpan starts a span for one handler invocation.
	// The handler span should be a child of the dispatch span.
	StartHandlerSpan(ctx context.Context, handler string, wildcard bool) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses the global OTel tracer
// provider. Configure the provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: otel.Tracer("eventengine")}
}

// NewSpanManagerFromProvider returns a SpanManager bound to the given
// tracer provider instead of the global one.
func NewSpanManagerFromProvider(provider trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: provider.Tracer("eventengine")}
}

// StartDispatchSpan starts a span for an entire dispatch.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, eventType, eventID string, stopAllowed bool) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, SpanDispatch,
		trace.WithAttributes(
			attribute.String(AttrEventType, eventType),
			attribute.String(AttrEventID, eventID),
			attribute.Bool(AttrStopAllowed, stopAllowed),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartHandlerSpan starts a span for one handler invocation.
func (m *otelSpanManager) StartHandlerSpan(ctx context.Context, handler string, wildcard bool) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, SpanHandler,
		trace.WithAttributes(
			attribute.String(AttrHandlerName, handler),
			attribute.Bool(AttrWildcard, wildcard),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
