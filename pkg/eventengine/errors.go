package eventengine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for event type declaration and validation.
var (
	// ErrInvalidEventType indicates a name outside the application's enumeration.
	// InvalidEventTypeError matches it with errors.Is.
	ErrInvalidEventType = errors.New("invalid event type")

	// ErrEmptyEventTypeName indicates an enumeration was declared with an empty name.
	ErrEmptyEventTypeName = errors.New("event type name cannot be empty")

	// ErrDuplicateEventTypeName indicates an enumeration declared the same name twice.
	ErrDuplicateEventTypeName = errors.New("duplicate event type name")

	// ErrReservedEventTypeName indicates an enumeration tried to declare AnyEventType.
	ErrReservedEventTypeName = errors.New("event type name is reserved")
)

// Sentinel errors for dispatch.
var (
	// ErrNilEvent indicates Dispatch was given a nil event, or a handler
	// returned a nil event without an error.
	ErrNilEvent = errors.New("event cannot be nil")
)

// InvalidEventTypeError is returned when a name is validated against an
// enumeration that does not contain it.
type InvalidEventTypeError struct {
	// Name is the rejected name.
	Name string
	// Valid lists the legal names in declaration order.
	Valid []string
}

// Error implements the error interface.
func (e *InvalidEventTypeError) Error() string {
	return fmt.Sprintf("event type %q is unknown. Valid types: %s", e.Name, strings.Join(e.Valid, ", "))
}

// Is reports whether target is ErrInvalidEventType.
func (e *InvalidEventTypeError) Is(target error) bool {
	return target == ErrInvalidEventType
}

// HandlerError wraps an error returned by a handler during dispatch.
// The dispatch that produced it was aborted at that handler.
type HandlerError struct {
	// Handler identifies the failing handler (its dynamic type).
	Handler string
	// EventType is the name of the event type being dispatched.
	EventType string
	// EventID is the ID of the working event when the handler failed.
	EventID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s failed on event %s (%s): %v", e.Handler, e.EventID, e.EventType, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
