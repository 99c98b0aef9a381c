package sms

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleSender writes the message to the log instead of sending it. Used in
// development where no Twilio account is configured.
type ConsoleSender struct {
	logger *zap.Logger
}

func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger.Named("ConsoleSender")}
}

func (s *ConsoleSender) Send(ctx context.Context, toContactNumber, message string) error {
	s.logger.Info("SMS (console)",
		zap.String("to", toContactNumber),
		zap.String("message", message))
	return nil
}
