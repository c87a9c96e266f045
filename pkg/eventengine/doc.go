/*
Package eventengine provides in-process, synchronous event dispatch.

# Overview

Producers raise typed events carrying a mutable payload; registered handlers
react to them, and may change or replace them, before control returns to the
producer. There is no broker, no goroutine and no queue: Dispatch is a plain
sequence of handler calls.

# Event Types

Each application declares its closed set of event type names once:

	const (
	    ApplicationStarted  = "applicationStarted"
	    ApplicationFinished = "applicationFinished"
	)

	var AppEvents = eventengine.MustEnumeration(ApplicationStarted, ApplicationFinished)

	started, err := AppEvents.Validate("applicationStarted")
	_, err = AppEvents.Validate("bogus") // *InvalidEventTypeError

# Handlers

A handler declares the names it observes and reacts to matching events:

	type auditHandler struct{ log *slog.Logger }

	func (h *auditHandler) HandledTypes() []string { return []string{eventengine.AnyEventType} }

	func (h *auditHandler) Handle(ctx context.Context, evt *eventengine.Event) (*eventengine.Event, error) {
	    h.log.Info("event", "type", evt.Type().Name())
	    return evt, nil
	}

Listing AnyEventType makes the handler a wildcard handler: it sees every
event, always after the type-specific handlers, and its other names are
ignored. For a one-off handler use NewHandler:

	d.AddHandler(eventengine.NewHandler([]string{DataFetchInit},
	    func(ctx context.Context, evt *eventengine.Event) (*eventengine.Event, error) {
	        evt.Data().Set("condition", false)
	        return evt, nil
	    }))

# Dispatch

	d := eventengine.NewDispatcher(eventengine.WithLogger(logger))
	d.AddHandler(&auditHandler{log: logger})

	evt := d.Create(started, eventengine.WithData(eventengine.NewEventData().With("x", 1)))
	evt, err := d.Dispatch(ctx, evt)

Handlers run in registration order and share the same Event and EventData,
so a handler's Set is visible to all later handlers and to the producer.
A handler may return a different Event; the substitute is what later
handlers and the caller receive.

# Stopping Propagation

A handler may call evt.StopPropagation(). The flag only ends the dispatch
when the caller opted in:

	evt, err := d.Dispatch(ctx, evt, eventengine.AllowStopPropagation())

# Durations

Events can point at the event that caused them. Duration is the time between
the two creations, zero for an event without an initiating event:

	finished := d.Create(appFinished, eventengine.WithInitiatingEvent(started))
	finished.Duration() // time.Duration since started was created

# Errors

Handlers are trusted, in-process code. The first handler error aborts the
dispatch and is returned wrapped in *HandlerError; panics propagate to the
caller untouched.

# Observability

WithLogger, WithMetrics and WithTracing enable slog records, OpenTelemetry
metrics and OpenTelemetry spans for registrations and dispatches. All are
off by default.
*/
package eventengine
