package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/payments"
	"github.com/timbermagic/timbermagic-api/internal/models"
	"github.com/timbermagic/timbermagic-api/internal/notify"
)

const notifyTimeout = 10 * time.Second

type SendResult struct {
	Emailed bool
	// Flagged marks a send from a status the transition table does not
	// allow into sent. The send still goes through.
	Flagged bool
}

type SendInvoice struct {
	repo       domain.Repository
	mailer     mailer.Mailer
	payments   payments.LinkProvider
	adminEmail string
	audit      audit.Recorder
}

func NewSendInvoice(
	repo domain.Repository,
	m mailer.Mailer,
	p payments.LinkProvider,
	adminEmail string,
	audit audit.Recorder,
) *SendInvoice {
	return &SendInvoice{
		repo:       repo,
		mailer:     m,
		payments:   p,
		adminEmail: adminEmail,
		audit:      audit,
	}
}

// Execute marks the invoice sent and e-mails it to the customer. The status
// change stands whatever happens to the e-mail.
func (uc *SendInvoice) Execute(ctx context.Context, id uuid.UUID, actor string) (*SendResult, error) {
	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("invoice_not_found")
		}
		return nil, err
	}

	from := domain.Status(inv.Status)
	res := &SendResult{Flagged: domain.CanTransition(from, domain.StatusSent) != nil}

	log := logrus.WithFields(logrus.Fields{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"from":           from,
	})
	if res.Flagged {
		log.Warn("sending invoice from a status that does not normally move to sent")
	}

	if err := uc.repo.SetStatus(ctx, id, domain.StatusSent); err != nil {
		return nil, err
	}
	inv.Status = string(domain.StatusSent)

	res.Emailed = uc.email(ctx, inv, log)

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "invoice_sent",
		Entity:   "invoice",
		EntityID: inv.ID.String(),
		Metadata: map[string]any{
			"from":    string(from),
			"emailed": res.Emailed,
			"flagged": res.Flagged,
		},
	})

	return res, nil
}

func (uc *SendInvoice) email(ctx context.Context, inv *models.Invoice, log *logrus.Entry) bool {
	if inv.Customer == nil || inv.Customer.Email == "" {
		log.Info("customer has no email, invoice not mailed")
		return false
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	link, err := uc.payments.PaymentLink(ctx, payments.LinkRequest{
		Reference:  inv.InvoiceNumber,
		Title:      notify.InvoiceSubject(inv),
		Amount:     inv.Total,
		PayerEmail: inv.Customer.Email,
	})
	if err != nil && !errors.Is(err, payments.ErrDisabled) {
		log.WithError(err).Warn("payment link unavailable")
	}

	html, err := notify.InvoiceEmail(inv, link)
	if err != nil {
		log.WithError(err).Error("render invoice email")
		return false
	}

	msg := mailer.Message{
		To:      []string{inv.Customer.Email},
		Subject: notify.InvoiceSubject(inv),
		HTML:    html,
	}
	if uc.adminEmail != "" {
		msg.Cc = []string{uc.adminEmail}
	}

	if err := uc.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, mailer.ErrDisabled) {
			log.Info("mailer disabled, invoice not mailed")
		} else {
			log.WithError(err).Error("invoice email failed")
		}
		return false
	}
	return true
}
