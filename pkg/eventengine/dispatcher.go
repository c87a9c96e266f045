package eventengine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventengine/pkg/eventengine/observability"
	"github.com/randalmurphal/eventengine/pkg/eventengine/registry"
)

// Dispatcher owns the handler registry, creates events and dispatches them.
//
// Handlers are kept per event type name in registration order. Handlers
// listing AnyEventType are kept in a separate wildcard list that runs after
// the type-specific list of every dispatched event.
//
// Registration and dispatch are safe to call from multiple goroutines, but
// the design assumes handlers are registered during setup. A dispatch works
// on the handler lists as they were when it started.
type Dispatcher struct {
	config   dispatcherConfig
	handlers *registry.Registry[string, Handler]
}

// NewDispatcher creates a dispatcher with no handlers.
func NewDispatcher(opts ...Option) *Dispatcher {
	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Dispatcher{
		config:   cfg,
		handlers: registry.New[string, Handler](sameHandler),
	}
}

// AddHandler registers h under every name in h.HandledTypes().
//
// If the names include AnyEventType, h is registered only as a wildcard
// handler and the other names are ignored. A handler already registered
// under a name is not added to that name again. A nil handler is ignored.
func (d *Dispatcher) AddHandler(h Handler) {
	if h == nil {
		return
	}

	types := h.HandledTypes()
	wildcard := slices.Contains(types, AnyEventType)
	if wildcard {
		types = []string{AnyEventType}
	}

	for _, t := range types {
		if d.handlers.Append(t, h) {
			observability.LogHandlerRegistered(d.config.logger, handlerName(h), t, wildcard)
		}
	}
}

// Handlers returns the handlers registered for typeName in dispatch order,
// excluding wildcard handlers.
func (d *Dispatcher) Handlers(typeName string) []Handler {
	if typeName == AnyEventType {
		return nil
	}
	return d.handlers.Get(typeName)
}

// WildcardHandlers returns the handlers registered for AnyEventType in
// dispatch order.
func (d *Dispatcher) WildcardHandlers() []Handler {
	return d.handlers.Get(AnyEventType)
}

// HasHandlers reports whether dispatching an event of typeName would invoke
// at least one handler.
func (d *Dispatcher) HasHandlers(typeName string) bool {
	return len(d.Handlers(typeName)) > 0 || d.handlers.Has(AnyEventType)
}

// Create returns a new event of type t stamped with the current time.
//
// Example:
//
//	evt := d.Create(fetchComplete,
//	    eventengine.WithData(eventengine.NewEventData().With("records", records)),
//	    eventengine.WithInitiatingEvent(fetchInit),
//	)
func (d *Dispatcher) Create(t EventType, opts ...CreateOption) *Event {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	data := cfg.data
	if data == nil {
		data = NewEventData()
	}

	return &Event{
		id:         uuid.New(),
		eventType:  t,
		data:       data,
		created:    d.config.clock(),
		initiating: cfg.initiating,
	}
}

// Dispatch runs evt through the handlers registered for its type, in
// registration order, then through the wildcard handlers. Each handler
// receives the event returned by the previous one; the last returned event
// is the result.
//
// With AllowStopPropagation, dispatch ends as soon as the working event is
// stopped after a handler returns. An event type without handlers is not an
// error: evt is returned unchanged.
//
// A handler error aborts the dispatch. The returned event is the working
// event at that point and the error is a *HandlerError. Handler panics are
// not recovered.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *Event, opts ...DispatchOption) (result *Event, err error) {
	if evt == nil {
		return nil, ErrNilEvent
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg dispatchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	typeName := evt.Type().Name()
	eventID := evt.ID()
	specific := d.Handlers(typeName)
	wildcards := d.WildcardHandlers()

	start := time.Now()
	observability.LogDispatchStart(d.config.logger, typeName, eventID, len(specific)+len(wildcards))

	ctx, span := d.config.spans.StartDispatchSpan(ctx, typeName, eventID, cfg.allowStop)
	span.SetAttributes(attribute.Int(observability.AttrHandlerCount, len(specific)+len(wildcards)))

	invoked := 0
	stopped := false
	defer func() {
		if r := recover(); r != nil {
			d.config.spans.EndSpanWithError(span, fmt.Errorf("handler panic: %v", r))
			panic(r)
		}
		d.config.spans.EndSpanWithError(span, err)
		d.config.metrics.RecordDispatch(ctx, typeName, stopped, time.Since(start))
		if err == nil {
			observability.LogDispatchComplete(d.config.logger, typeName, eventID, invoked, stopped,
				float64(time.Since(start).Microseconds())/1000)
		}
	}()

	phases := []struct {
		handlers []Handler
		wildcard bool
	}{
		{handlers: specific},
		{handlers: wildcards, wildcard: true},
	}

	for _, phase := range phases {
		for _, h := range phase.handlers {
			evt, err = d.invoke(ctx, h, evt, typeName, phase.wildcard)
			invoked++
			if err != nil {
				return evt, err
			}

			if cfg.allowStop && evt.IsStopped() {
				stopped = true
				name := handlerName(h)
				observability.LogPropagationStopped(d.config.logger, typeName, evt.ID(), name)
				d.config.spans.AddSpanEvent(ctx, observability.SpanEventPropagationStopped,
					attribute.String(observability.AttrHandlerName, name),
				)
				return evt, nil
			}
		}
	}

	return evt, nil
}

// invoke calls one handler and applies the handler contract to its result.
func (d *Dispatcher) invoke(ctx context.Context, h Handler, evt *Event, typeName string, wildcard bool) (*Event, error) {
	name := handlerName(h)

	hctx, span := d.config.spans.StartHandlerSpan(ctx, name, wildcard)
	defer func() {
		if r := recover(); r != nil {
			d.config.spans.EndSpanWithError(span, fmt.Errorf("handler panic: %v", r))
			panic(r)
		}
	}()

	start := time.Now()
	result, err := h.Handle(hctx, evt)
	if err == nil && result == nil {
		err = ErrNilEvent
	}
	duration := time.Since(start)

	d.config.metrics.RecordHandlerInvocation(ctx, typeName, name, duration, err)

	if err != nil {
		d.config.spans.EndSpanWithError(span, err)
		observability.LogHandlerError(d.config.logger, typeName, evt.ID(), name, err)
		return evt, &HandlerError{
			Handler:   name,
			EventType: typeName,
			EventID:   evt.ID(),
			Err:       err,
		}
	}

	span.SetAttributes(attribute.Bool(observability.AttrSubstituted, result != evt))
	d.config.spans.EndSpanWithError(span, nil)
	observability.LogHandlerComplete(d.config.logger, typeName, name, float64(duration.Microseconds())/1000)

	return result, nil
}
