package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/randalmurphal/eventengine/pkg/eventengine"
)

// Log formats accepted by Settings.LogFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds dispatcher configuration.
type Settings struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level" env:"EVENTENGINE_LOG_LEVEL"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" json:"log_format" env:"EVENTENGINE_LOG_FORMAT"`

	// Metrics enables OpenTelemetry metrics through the global meter provider.
	Metrics bool `yaml:"metrics" json:"metrics" env:"EVENTENGINE_METRICS"`

	// Tracing enables OpenTelemetry tracing through the global tracer provider.
	Tracing bool `yaml:"tracing" json:"tracing" env:"EVENTENGINE_TRACING"`
}

// Default returns settings with info-level text logging and no telemetry.
func Default() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: FormatText,
	}
}

// Validate reports unknown log levels or formats.
func (s Settings) Validate() error {
	if _, err := s.level(); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: log format %q (want %s or %s)", ErrInvalidSettings, s.LogFormat, FormatText, FormatJSON)
	}
}

func (s Settings) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.LogLevel)
	}
	return level, nil
}

// NewLogger builds a slog logger writing to w in the configured format and
// at the configured level.
func (s Settings) NewLogger(w io.Writer) (*slog.Logger, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	level, _ := s.level()
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(s.LogFormat, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// DispatcherOptions returns the options for a dispatcher logging to w.
func (s Settings) DispatcherOptions(w io.Writer) ([]eventengine.Option, error) {
	logger, err := s.NewLogger(w)
	if err != nil {
		return nil, err
	}
	return []eventengine.Option{
		eventengine.WithLogger(logger),
		eventengine.WithMetrics(s.Metrics),
		eventengine.WithTracing(s.Tracing),
	}, nil
}
