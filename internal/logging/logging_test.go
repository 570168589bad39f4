package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leengari/crackdb/internal/config"
)

func TestSetupLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := setupLogger(config.LoggingConfig{Level: "warn"}, &buf)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", slog.Int("rows", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "rows=3")
}

func TestSetupLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := setupLogger(config.LoggingConfig{Level: "loud"}, &buf)
	defer closeFn()

	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(h).With("table", "edges")

	logger.Debug("select_eq")
	logger.Warn("slow")

	assert.Contains(t, debug.String(), "msg=select_eq")
	assert.Contains(t, debug.String(), "msg=slow")
	assert.NotContains(t, warn.String(), "select_eq")
	assert.Contains(t, warn.String(), "table=edges")
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-4))
}
