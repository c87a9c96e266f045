package eventengine

import (
	"fmt"
	"slices"
)

// AnyEventType is the wildcard marker a handler lists in HandledTypes to
// observe every dispatched event. It is never a legal event type name.
const AnyEventType = "*"

// EventType classifies an event. Values are only produced by validating a
// name against an Enumeration, so a non-zero EventType always carries a
// legal name. Two EventTypes are equal (==) iff their names are equal.
type EventType struct {
	name string
}

// Name returns the type name.
func (t EventType) Name() string {
	return t.name
}

// String implements fmt.Stringer.
func (t EventType) String() string {
	return t.name
}

// IsZero reports whether t was never validated.
func (t EventType) IsZero() bool {
	return t.name == ""
}

// Enumeration is the closed, ordered set of legal event type names of one
// application. It is immutable after construction.
//
// Declare it once, next to the name constants:
//
//	const (
//	    OrderPlaced  = "orderPlaced"
//	    OrderShipped = "orderShipped"
//	)
//
//	var OrderEvents = eventengine.MustEnumeration(OrderPlaced, OrderShipped)
type Enumeration struct {
	names []string
	index map[string]struct{}
}

// NewEnumeration declares the legal names in the given order.
// Names must be non-empty, unique, and must not be AnyEventType.
func NewEnumeration(names ...string) (*Enumeration, error) {
	e := &Enumeration{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}

	for _, name := range names {
		switch {
		case name == "":
			return nil, ErrEmptyEventTypeName
		case name == AnyEventType:
			return nil, fmt.Errorf("%w: %q", ErrReservedEventTypeName, name)
		}
		if _, exists := e.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEventTypeName, name)
		}
		e.index[name] = struct{}{}
		e.names = append(e.names, name)
	}

	return e, nil
}

// MustEnumeration is like NewEnumeration but panics on an invalid declaration.
// Intended for package-level variables.
func MustEnumeration(names ...string) *Enumeration {
	e, err := NewEnumeration(names...)
	if err != nil {
		panic(fmt.Sprintf("eventengine: invalid enumeration: %v", err))
	}
	return e
}

// Names returns the legal names in declaration order.
// The returned slice is a copy.
func (e *Enumeration) Names() []string {
	return slices.Clone(e.names)
}

// Len returns the number of legal names.
func (e *Enumeration) Len() int {
	return len(e.names)
}

// Contains reports whether name is legal.
func (e *Enumeration) Contains(name string) bool {
	_, ok := e.index[name]
	return ok
}

// Validate returns the EventType for name, or an *InvalidEventTypeError
// listing the legal names.
func (e *Enumeration) Validate(name string) (EventType, error) {
	if !e.Contains(name) {
		return EventType{}, &InvalidEventTypeError{
			Name:  name,
			Valid: e.Names(),
		}
	}
	return EventType{name: name}, nil
}

// MustValidate is like Validate but panics on an unknown name.
func (e *Enumeration) MustValidate(name string) EventType {
	t, err := e.Validate(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Types returns every legal EventType in declaration order.
func (e *Enumeration) Types() []EventType {
	types := make([]EventType, len(e.names))
	for i, name := range e.names {
		types[i] = EventType{name: name}
	}
	return types
}
