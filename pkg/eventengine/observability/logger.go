// Package observability provides structured logging, metrics and tracing
// for event dispatch.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds event context to a logger.
// Returns a new logger with event_type and event_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "orderPlaced", evt.ID())
//	enriched.Info("sending receipt") // includes event_type, event_id
func EnrichLogger(logger *slog.Logger, eventType, eventID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
	)
}

// LogHandlerRegistered logs a handler registration.
func LogHandlerRegistered(logger *slog.Logger, handler string, eventType string, wildcard bool) {
	if logger == nil {
		return
	}
	logger.Debug("handler registered",
		slog.String("handler", handler),
		slog.String("event_type", eventType),
		slog.Bool("wildcard", wildcard),
	)
}

// LogDispatchStart logs the start of a dispatch.
func LogDispatchStart(logger *slog.Logger, eventType, eventID string, handlerCount int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
		slog.Int("handlers", handlerCount),
	)
}

// LogHandlerComplete logs a successful handler invocation.
func LogHandlerComplete(logger *slog.Logger, eventType, handler string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("handler completed",
		slog.String("event_type", eventType),
		slog.String("handler", handler),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHandlerError logs a handler failure. The dispatch is aborted.
func LogHandlerError(logger *slog.Logger, eventType, eventID, handler string, err error) {
	if logger == nil {
		return
	}
	logger.Error("handler failed",
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
		slog.String("handler", handler),
		slog.String("error", err.Error()),
	)
}

// LogPropagationStopped logs a dispatch cut short by a handler.
func LogPropagationStopped(logger *slog.Logger, eventType, eventID, handler string) {
	if logger == nil {
		return
	}
	logger.Debug("propagation stopped",
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
		slog.String("handler", handler),
	)
}

// LogDispatchComplete logs the end of a dispatch.
func LogDispatchComplete(logger *slog.Logger, eventType, eventID string, invoked int, stopped bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch completed",
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
		slog.Int("handlers_invoked", invoked),
		slog.Bool("stopped", stopped),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
