package eventengine

import (
	"context"
	"fmt"
	"reflect"
)

// Handler observes events of the types it declares.
type Handler interface {
	// HandledTypes returns the event type names this handler observes.
	// Listing AnyEventType registers the handler for every event type and
	// causes the other names to be ignored.
	HandledTypes() []string

	// Handle reacts to an event and returns the event to propagate.
	// Normally that is evt itself, mutated through its Data. Returning a
	// different event substitutes it for every later handler and for the
	// caller of Dispatch. Returning an error aborts the dispatch.
	Handle(ctx context.Context, evt *Event) (*Event, error)
}

// HandlerFunc adapts a function to the Handler interface as a wildcard
// handler. Function values are not comparable, so registering the same
// HandlerFunc twice registers it twice; use NewHandler when deduplication
// matters.
type HandlerFunc func(ctx context.Context, evt *Event) (*Event, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, evt *Event) (*Event, error) {
	return f(ctx, evt)
}

// HandledTypes returns AnyEventType.
func (f HandlerFunc) HandledTypes() []string {
	return []string{AnyEventType}
}

// NewHandler returns a handler observing the given type names with fn.
// Each call returns a distinct handler.
func NewHandler(types []string, fn func(ctx context.Context, evt *Event) (*Event, error)) Handler {
	return &funcHandler{
		types: types,
		fn:    fn,
	}
}

type funcHandler struct {
	types []string
	fn    func(ctx context.Context, evt *Event) (*Event, error)
}

func (h *funcHandler) Handle(ctx context.Context, evt *Event) (*Event, error) {
	return h.fn(ctx, evt)
}

func (h *funcHandler) HandledTypes() []string {
	return h.types
}

// sameHandler compares handlers by identity. Handlers whose dynamic type is
// not comparable are never the same.
func sameHandler(a, b Handler) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// handlerName extracts a name for a handler (for logging/metrics).
func handlerName(h Handler) string {
	if named, ok := h.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", h)
}
