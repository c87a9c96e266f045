package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, 0, len(h.attrs)+len(attrs)),
	}
	newH.attrs = append(newH.attrs, h.attrs...)
	newH.attrs = append(newH.attrs, attrs...)
	return newH
}

func (h *testHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *testHandler) getLastRecord() map[string]any {
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) > 0 {
			var m map[string]any
			if err := json.Unmarshal(lines[i], &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds event_type and event_id", func(t *testing.T) {
		h := newTestHandler()
		enriched := EnrichLogger(slog.New(h), "orderPlaced", "evt-1")
		enriched.Info("sending receipt")

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "orderPlaced", record["event_type"])
		assert.Equal(t, "evt-1", record["event_id"])
		assert.Equal(t, "sending receipt", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "t", "id"))
	})
}

func TestLogHandlerRegistered(t *testing.T) {
	h := newTestHandler()
	LogHandlerRegistered(slog.New(h), "audit", "*", true)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "handler registered", record["msg"])
	assert.Equal(t, "audit", record["handler"])
	assert.Equal(t, "*", record["event_type"])
	assert.Equal(t, true, record["wildcard"])
}

func TestLogDispatchStart(t *testing.T) {
	h := newTestHandler()
	LogDispatchStart(slog.New(h), "started", "evt-2", 3)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "dispatch starting", record["msg"])
	assert.Equal(t, "started", record["event_type"])
	assert.Equal(t, "evt-2", record["event_id"])
	assert.Equal(t, float64(3), record["handlers"])
}

func TestLogHandlerComplete(t *testing.T) {
	h := newTestHandler()
	LogHandlerComplete(slog.New(h), "started", "progress", 1.5)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "handler completed", record["msg"])
	assert.Equal(t, "progress", record["handler"])
	assert.Equal(t, 1.5, record["duration_ms"])
}

func TestLogHandlerError(t *testing.T) {
	h := newTestHandler()
	LogHandlerError(slog.New(h), "started", "evt-3", "progress", errors.New("disk full"))

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "handler failed", record["msg"])
	assert.Equal(t, "started", record["event_type"])
	assert.Equal(t, "evt-3", record["event_id"])
	assert.Equal(t, "progress", record["handler"])
	assert.Equal(t, "disk full", record["error"])
}

func TestLogPropagationStopped(t *testing.T) {
	h := newTestHandler()
	LogPropagationStopped(slog.New(h), "t", "evt-4", "guard")

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "propagation stopped", record["msg"])
	assert.Equal(t, "guard", record["handler"])
}

func TestLogDispatchComplete(t *testing.T) {
	h := newTestHandler()
	LogDispatchComplete(slog.New(h), "t", "evt-5", 2, true, 0.25)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "dispatch completed", record["msg"])
	assert.Equal(t, float64(2), record["handlers_invoked"])
	assert.Equal(t, true, record["stopped"])
	assert.Equal(t, 0.25, record["duration_ms"])
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogHandlerRegistered(nil, "h", "t", false)
		LogDispatchStart(nil, "t", "id", 0)
		LogHandlerComplete(nil, "t", "h", 0)
		LogHandlerError(nil, "t", "id", "h", errors.New("err"))
		LogPropagationStopped(nil, "t", "id", "h")
		LogDispatchComplete(nil, "t", "id", 0, false, 0)
	})
}

func TestLogLevelFiltering(t *testing.T) {
	h := newTestHandler()
	h.level = slog.LevelInfo
	logger := slog.New(h)

	LogDispatchStart(logger, "t", "id", 1)
	assert.Nil(t, h.getLastRecord(), "debug records are filtered at info level")

	LogHandlerError(logger, "t", "id", "h", errors.New("boom"))
	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "ERROR", record["level"])
}

func TestTimedOperation(t *testing.T) {
	t.Run("measures duration", func(t *testing.T) {
		done := TimedOperation()
		time.Sleep(10 * time.Millisecond)
		assert.GreaterOrEqual(t, done(), 10.0)
	})

	t.Run("can be called multiple times", func(t *testing.T) {
		done := TimedOperation()
		time.Sleep(2 * time.Millisecond)
		d1 := done()
		time.Sleep(2 * time.Millisecond)
		d2 := done()
		assert.Greater(t, d2, d1)
	})
}
