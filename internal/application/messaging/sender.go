package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/messaging"
)

// Sender is the outbound delivery channel. Gateway integration sits
// behind this interface so the dispatch loop stays testable.
type Sender interface {
	Send(ctx context.Context, notification *messaging.Notification) error
}

// LogSender writes outbound messages to the log instead of a gateway.
// Used in development and as the default until a channel is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message and reports success
func (s *LogSender) Send(_ context.Context, notification *messaging.Notification) error {
	s.logger.Info("outbound message",
		zap.String("type", notification.Type.String()),
		zap.String("recipient", notification.Recipient.Contact),
		zap.String("language", string(notification.Language)),
		zap.String("message", notification.Message),
	)
	return nil
}
