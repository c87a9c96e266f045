package eventengine

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/eventengine/pkg/eventengine/observability"
)

// dispatcherConfig holds configuration for a Dispatcher.
type dispatcherConfig struct {
	clock   func() time.Time
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultDispatcherConfig returns the default configuration: wall clock,
// no logging, no metrics, no tracing.
func defaultDispatcherConfig() dispatcherConfig {
	return dispatcherConfig{
		clock:   time.Now,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Dispatcher.
type Option func(*dispatcherConfig)

// WithClock sets the function used to timestamp created events.
// Default: time.Now
//
// Useful for deterministic durations in tests.
func WithClock(clock func() time.Time) Option {
	return func(c *dispatcherConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger enables structured logging of registrations and dispatches.
// Dispatch lifecycle records are logged at debug level, handler failures
// at error level.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	d := eventengine.NewDispatcher(eventengine.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *dispatcherConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics through the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(c *dispatcherConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
func WithMetricsRecorder(recorder observability.MetricsRecorder) Option {
	return func(c *dispatcherConfig) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// WithTracing enables OpenTelemetry tracing through the global tracer provider.
// Each dispatch gets an "eventengine.dispatch" span with one
// "eventengine.handler" child span per handler invocation.
func WithTracing(enabled bool) Option {
	return func(c *dispatcherConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager sets a custom span manager.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(c *dispatcherConfig) {
		if spans != nil {
			c.spans = spans
		}
	}
}

// createConfig holds the optional parts of a new Event.
type createConfig struct {
	data       *EventData
	initiating *Event
}

// CreateOption configures Dispatcher.Create.
type CreateOption func(*createConfig)

// WithData attaches a payload. Default: an empty payload.
// The event takes the payload by reference.
func WithData(data *EventData) CreateOption {
	return func(c *createConfig) {
		c.data = data
	}
}

// WithInitiatingEvent links the new event to the event that caused it.
// Duration is measured from the initiating event's creation.
func WithInitiatingEvent(evt *Event) CreateOption {
	return func(c *createConfig) {
		c.initiating = evt
	}
}

// dispatchConfig holds per-dispatch settings.
type dispatchConfig struct {
	allowStop bool
}

// DispatchOption configures a single Dispatch call.
type DispatchOption func(*dispatchConfig)

// AllowStopPropagation makes Dispatch honor Event.StopPropagation: once the
// working event is stopped after a handler returns, no further handlers run.
// Without it the stopped flag is set but ignored.
func AllowStopPropagation() DispatchOption {
	return func(c *dispatchConfig) {
		c.allowStop = true
	}
}
