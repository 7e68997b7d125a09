package analytics

import (
	"context"

	"go.uber.org/zap"
)

// LogSink emits structured logs for debugging visit streams. It is useful
// during development or audits where the file store is unavailable.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each visit in the batch using structured fields.
func (s *LogSink) Consume(_ context.Context, batch []Visit) error {
	for _, v := range batch {
		s.logger.Info("visit",
			zap.String("id", v.ID),
			zap.Time("ts", v.Timestamp),
			zap.String("path", v.Path),
			zap.String("device", string(v.Device)),
			zap.String("bot_category", string(v.BotCategory)),
			zap.String("user_agent", v.UserAgent),
		)
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}
