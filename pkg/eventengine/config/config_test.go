package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventengine/pkg/eventengine/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	s := config.Default()
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, config.FormatText, s.LogFormat)
	assert.False(t, s.Metrics)
	assert.False(t, s.Tracing)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Settings)
		wantErr bool
	}{
		{"defaults", func(*config.Settings) {}, false},
		{"debug json", func(s *config.Settings) { s.LogLevel, s.LogFormat = "debug", "json" }, false},
		{"upper case", func(s *config.Settings) { s.LogLevel, s.LogFormat = "WARN", "JSON" }, false},
		{"unknown level", func(s *config.Settings) { s.LogLevel = "verbose" }, true},
		{"empty level", func(s *config.Settings) { s.LogLevel = "" }, true},
		{"unknown format", func(s *config.Settings) { s.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromYAML(t *testing.T) {
	s, err := config.FromYAML([]byte("log_level: debug\nmetrics: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, config.FormatText, s.LogFormat, "missing keys keep defaults")
	assert.True(t, s.Metrics)
	assert.False(t, s.Tracing)

	_, err = config.FromYAML([]byte("log_level: [unclosed"))
	assert.ErrorContains(t, err, "parse yaml")
}

func TestFromJSON(t *testing.T) {
	s, err := config.FromJSON([]byte(`{"log_format":"json","tracing":true}`))
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, config.FormatJSON, s.LogFormat)
	assert.True(t, s.Tracing)

	_, err = config.FromJSON([]byte(`{"log_format":`))
	assert.ErrorContains(t, err, "parse json")
}

func TestFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		s, err := config.FromFile(writeFile(t, "settings.yaml", "log_level: warn\n"))
		require.NoError(t, err)
		assert.Equal(t, "warn", s.LogLevel)
	})

	t.Run("yml", func(t *testing.T) {
		s, err := config.FromFile(writeFile(t, "settings.YML", "log_format: json\n"))
		require.NoError(t, err)
		assert.Equal(t, config.FormatJSON, s.LogFormat)
	})

	t.Run("json", func(t *testing.T) {
		s, err := config.FromFile(writeFile(t, "settings.json", `{"metrics":true}`))
		require.NoError(t, err)
		assert.True(t, s.Metrics)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.FromFile(writeFile(t, "settings.toml", "log_level = 'debug'"))
		assert.ErrorContains(t, err, "unsupported config file extension: .toml")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		s, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), s)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "settings.yaml", "log_level: debug\nlog_format: json\nmetrics: true\n")
		t.Setenv("EVENTENGINE_LOG_LEVEL", "error")
		t.Setenv("EVENTENGINE_TRACING", "true")

		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "error", s.LogLevel)
		assert.Equal(t, config.FormatJSON, s.LogFormat, "unset variable keeps file value")
		assert.True(t, s.Metrics)
		assert.True(t, s.Tracing)
	})

	t.Run("malformed environment value", func(t *testing.T) {
		t.Setenv("EVENTENGINE_METRICS", "sometimes")
		_, err := config.Load("")
		assert.ErrorContains(t, err, "parse env:")
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		t.Setenv("EVENTENGINE_LOG_FORMAT", "xml")
		_, err := config.Load("")
		assert.ErrorIs(t, err, config.ErrInvalidSettings)
	})

	t.Run("file error", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json at debug", func(t *testing.T) {
		var buf bytes.Buffer
		s := config.Settings{LogLevel: "debug", LogFormat: "json"}
		logger, err := s.NewLogger(&buf)
		require.NoError(t, err)

		logger.Debug("hello")
		assert.True(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		s := config.Settings{LogLevel: "warn", LogFormat: "text"}
		logger, err := s.NewLogger(&buf)
		require.NoError(t, err)

		logger.Info("quiet")
		assert.Empty(t, buf.String())
		logger.Warn("loud")
		assert.Contains(t, buf.String(), "msg=loud")
	})

	t.Run("invalid settings", func(t *testing.T) {
		s := config.Settings{LogLevel: "chatty", LogFormat: "text"}
		_, err := s.NewLogger(&bytes.Buffer{})
		assert.ErrorIs(t, err, config.ErrInvalidSettings)
	})
}

func TestDispatcherOptions(t *testing.T) {
	opts, err := config.Default().DispatcherOptions(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	_, err = config.Settings{LogLevel: "info", LogFormat: "csv"}.DispatcherOptions(&bytes.Buffer{})
	assert.Error(t, err)
}
