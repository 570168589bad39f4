package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLoggingObserver creates a new logging observer. A nil logger falls back
// to slog.Default().
func NewLoggingObserver(logger *slog.Logger, level slog.Level) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
		level:  level,
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Log(context.Background(), lo.level, "table_lifecycle",
		"event", event.Type,
		"query_id", event.QueryID,
		"table", event.Table,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
