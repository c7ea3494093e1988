package request

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/sms"
	"github.com/timbermagic/timbermagic-api/internal/models"
	"github.com/timbermagic/timbermagic-api/internal/notify"
)

const notifyTimeout = 10 * time.Second

// Notifier sends the admin alert and the customer confirmation for a new
// quote request. Every failure is logged and swallowed.
type Notifier struct {
	mailer     mailer.Mailer
	sms        sms.Sender
	adminEmail string
	adminPhone string
}

func NewNotifier(m mailer.Mailer, s sms.Sender, adminEmail, adminPhone string) *Notifier {
	return &Notifier{
		mailer:     m,
		sms:        s,
		adminEmail: adminEmail,
		adminPhone: adminPhone,
	}
}

func (n *Notifier) RequestReceived(ctx context.Context, req *models.ServiceRequest, in CreateRequestInput) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	log := logrus.WithField("request_id", req.ID)

	attachments, inline, skipped := notify.ImageAttachments(in.Images)
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("ignoring images that are not base64 data urls")
	}

	notice := notify.RequestNotice{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Description: in.Description,
		Images:      inline,
	}
	if req.Service != nil {
		notice.ServiceName = req.Service.NameEN
	}

	// admin
	if n.adminEmail != "" {
		html, err := notify.RequestAdminEmail(notice)
		if err == nil {
			err = n.mailer.Send(ctx, mailer.Message{
				To:          []string{n.adminEmail},
				Subject:     notify.RequestAdminSubject(notice),
				HTML:        html,
				Attachments: attachments,
			})
		}
		logFailure(log, "admin notification", err)
	}

	// customer
	if in.Email != "" {
		html, err := notify.RequestConfirmationEmail(notice)
		if err == nil {
			err = n.mailer.Send(ctx, mailer.Message{
				To:      []string{in.Email},
				Subject: notify.RequestConfirmationSubject(),
				HTML:    html,
			})
		}
		logFailure(log, "customer confirmation", err)
	}

	// sms
	if n.adminPhone != "" {
		logFailure(log, "admin sms", n.sms.Send(ctx, n.adminPhone, notify.RequestSMS(notice)))
	}
}

func logFailure(log *logrus.Entry, what string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, mailer.ErrDisabled) || errors.Is(err, sms.ErrDisabled) {
		log.Debugf("%s skipped: provider disabled", what)
		return
	}
	log.WithError(err).Errorf("%s failed", what)
}
