package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioSender delivers SMS through the Twilio Messages API. Reset codes
// travel only through this channel, never through an HTTP response.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

func NewTwilioSender(accountSID, authToken, from string, logger *zap.Logger) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   from,
		logger: logger.Named("TwilioSender"),
	}, nil
}

func (s *TwilioSender) Send(ctx context.Context, toContactNumber, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo("+91" + toContactNumber)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.logger.Error("failed to send SMS", zap.Error(err))
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp.Sid != nil {
		s.logger.Info("SMS sent", zap.String("sid", *resp.Sid))
	}
	return nil
}
