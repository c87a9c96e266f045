package eventengine_test

import (
	"context"
	"time"

	"github.com/randalmurphal/eventengine/pkg/eventengine"
)

// Event type names used across tests.
const (
	typeStarted  = "started"
	typeFinished = "finished"
	typeT        = "t"
	typeOther    = "other"
)

var testEvents = eventengine.MustEnumeration(typeStarted, typeFinished, typeT, typeOther)

// recordingHandler appends its name to a shared call log and optionally
// runs fn on the event.
type recordingHandler struct {
	name  string
	types []string
	calls *[]string
	fn    func(evt *eventengine.Event) (*eventengine.Event, error)
}

func (h *recordingHandler) HandledTypes() []string {
	return h.types
}

func (h *recordingHandler) Handle(_ context.Context, evt *eventengine.Event) (*eventengine.Event, error) {
	*h.calls = append(*h.calls, h.name)
	if h.fn != nil {
		return h.fn(evt)
	}
	return evt, nil
}

func (h *recordingHandler) Name() string {
	return h.name
}

// newRecorder creates a recordingHandler logging into calls.
func newRecorder(name string, calls *[]string, types ...string) *recordingHandler {
	return &recordingHandler{name: name, types: types, calls: calls}
}

// stepClock returns a clock advancing by step on every call, starting at base.
func stepClock(base time.Time, step time.Duration) func() time.Time {
	current := base.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
