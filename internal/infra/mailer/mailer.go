package mailer

import (
	"context"
	"errors"
)

// ErrDisabled is returned when no e-mail provider is configured.
var ErrDisabled = errors.New("mailer disabled")

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          []string
	Cc          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Noop stands in when RESEND_API_KEY is unset.
type Noop struct{}

func (Noop) Send(context.Context, Message) error {
	return ErrDisabled
}
