package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioSMS sends SMS through the Twilio REST API
type TwilioSMS struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioSMS creates a new Twilio SMS sender
func NewTwilioSMS(accountSID, authToken, fromNumber string, logger *zap.Logger) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMS{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// Send delivers body to the E.164 number to
func (t *TwilioSMS) Send(to, body string) error {
	// Without a sender number the message is only logged
	if t.fromNumber == "" {
		t.logger.Info("sms delivery disabled", zap.String("to", to), zap.String("body", body))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
