package notifier

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers a short message to one recipient. Callers treat it as best-effort.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, message string) error
}

// LogNotifier only records the message; used when no mail server is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) Notify(_ context.Context, recipient, subject, message string) error {
	n.log.Info("Notification",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("message", message),
	)
	return nil
}
