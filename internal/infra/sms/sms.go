package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrDisabled = errors.New("sms disabled")

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type Noop struct{}

func (Noop) Send(context.Context, string, string) error { return ErrDisabled }

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

// Send posts one message. The Twilio client has no context support, so ctx
// is only checked before the call.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}

	entry := logrus.WithField("to", to)
	if resp.Sid != nil {
		entry = entry.WithField("sid", *resp.Sid)
	}
	entry.Info("sms sent")
	return nil
}
