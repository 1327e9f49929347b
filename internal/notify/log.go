package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes messages to the log instead of a chat channel. It is
// used when no webhook is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the message and never fails.
func (n *LogNotifier) Send(_ context.Context, username, content string) error {
	n.logger.Info("forecast message", "username", username, "content", content)
	return nil
}
