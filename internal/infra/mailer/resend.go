package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("send %q: no recipients", msg.Subject)
	}

	req := buildRequest(m.from, msg)
	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend %q: %w", msg.Subject, err)
	}

	logrus.WithFields(logrus.Fields{
		"email_id":    sent.Id,
		"subject":     msg.Subject,
		"attachments": len(req.Attachments),
	}).Info("email sent")
	return nil
}

func buildRequest(from string, msg Message) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Cc:      msg.Cc,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		})
	}
	return req
}

// New picks Resend when an API key is configured.
func New(apiKey, from string) Mailer {
	if apiKey == "" {
		logrus.Warn("RESEND_API_KEY not set, outgoing email disabled")
		return Noop{}
	}
	return NewResendMailer(apiKey, from)
}
