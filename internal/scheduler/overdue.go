package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/models"
	"github.com/timbermagic/timbermagic-api/internal/notify"
	"github.com/timbermagic/timbermagic-api/internal/timezone"
)

type OverdueSource interface {
	ListOverdue(ctx context.Context, today time.Time) ([]models.Invoice, error)
}

// OverdueDigest mails the admin one summary of sent invoices past their due
// date.
type OverdueDigest struct {
	invoices   OverdueSource
	mailer     mailer.Mailer
	adminEmail string
	tz         string
	now        func() time.Time
}

func NewOverdueDigest(invoices OverdueSource, m mailer.Mailer, adminEmail, tz string) *OverdueDigest {
	return &OverdueDigest{
		invoices:   invoices,
		mailer:     m,
		adminEmail: adminEmail,
		tz:         tz,
		now:        time.Now,
	}
}

func (d *OverdueDigest) Run(ctx context.Context) error {
	if d.adminEmail == "" {
		logrus.Debug("overdue digest skipped: no admin email")
		return nil
	}

	today := timezone.DayStart(d.now().In(timezone.Location(d.tz)))

	overdue, err := d.invoices.ListOverdue(ctx, today)
	if err != nil {
		return fmt.Errorf("list overdue invoices: %w", err)
	}
	if len(overdue) == 0 {
		logrus.Debug("no overdue invoices")
		return nil
	}

	html, err := notify.OverdueEmail(overdue, today)
	if err != nil {
		return fmt.Errorf("render overdue digest: %w", err)
	}

	if err := d.mailer.Send(ctx, mailer.Message{
		To:      []string{d.adminEmail},
		Subject: notify.OverdueSubject(len(overdue), today),
		HTML:    html,
	}); err != nil {
		return fmt.Errorf("send overdue digest: %w", err)
	}

	logrus.WithField("count", len(overdue)).Info("overdue digest sent")
	return nil
}
