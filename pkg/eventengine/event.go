package eventengine

import (
	"time"

	"github.com/google/uuid"
)

// Event binds an EventType, its payload, a creation timestamp and an
// optional causal link to an earlier event.
//
// Events are created by Dispatcher.Create. The type, timestamp and
// initiating event never change; handlers communicate through Data and
// through the stop-propagation flag, which only ever goes from false to true.
type Event struct {
	id         uuid.UUID
	eventType  EventType
	data       *EventData
	created    time.Time
	initiating *Event
	stopped    bool
}

// ID returns the unique event identifier, used to correlate logs and spans.
func (e *Event) ID() string {
	return e.id.String()
}

// Type returns the event type.
func (e *Event) Type() EventType {
	return e.eventType
}

// Data returns the live payload. It is shared, not copied.
func (e *Event) Data() *EventData {
	return e.data
}

// CreationTime returns when the event was created. The value carries a
// monotonic clock reading when produced by the default clock.
func (e *Event) CreationTime() time.Time {
	return e.created
}

// InitiatingEvent returns the event this one was caused by, or e itself
// when none was supplied.
func (e *Event) InitiatingEvent() *Event {
	if e.initiating == nil {
		return e
	}
	return e.initiating
}

// HasInitiatingEvent reports whether an initiating event was supplied.
func (e *Event) HasInitiatingEvent() bool {
	return e.initiating != nil
}

// StopPropagation marks the event as stopped and returns true.
// Calling it again has no further effect.
func (e *Event) StopPropagation() bool {
	e.stopped = true
	return e.stopped
}

// IsStopped reports whether StopPropagation was called.
func (e *Event) IsStopped() bool {
	return e.stopped
}

// Duration returns the time elapsed between the initiating event's creation
// and this event's creation. It is zero when the event is its own
// initiating event.
//
//	started, _ := d.Dispatch(ctx, d.Create(appStarted))
//	finished, _ := d.Dispatch(ctx, d.Create(appFinished, eventengine.WithInitiatingEvent(started)))
//	fmt.Printf("took %.2f ms\n", float64(finished.Duration().Microseconds())/1000)
func (e *Event) Duration() time.Duration {
	return e.CreationTime().Sub(e.InitiatingEvent().CreationTime())
}
