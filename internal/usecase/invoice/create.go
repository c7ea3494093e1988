package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
	"github.com/timbermagic/timbermagic-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInvoiceInput struct {
	CustomerID uuid.UUID
	Items      []domain.ItemInput

	Subtotal *decimal.Decimal
	Tax      *decimal.Decimal
	Total    *decimal.Decimal

	Status  string
	DueDate models.Date
	Notes   *string

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateInvoice struct {
	repo  domain.Repository
	audit audit.Recorder
	tz    string

	now    func() time.Time
	suffix domain.NumberSource
}

func NewCreateInvoice(
	repo domain.Repository,
	audit audit.Recorder,
	tz string,
) *CreateInvoice {
	return &CreateInvoice{
		repo:   repo,
		audit:  audit,
		tz:     tz,
		now:    time.Now,
		suffix: domain.RandomSuffix,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateInvoice) Execute(
	ctx context.Context,
	in CreateInvoiceInput,
) (*models.Invoice, error) {

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	ok, err := uc.repo.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusinessf("unknown_customer", "customer_id does not reference a customer")
	}

	// --------------------------------------------------
	// Items and totals
	// --------------------------------------------------
	items, err := domain.BuildItems(in.Items)
	if err != nil {
		return nil, err
	}

	totals := domain.ResolveTotals(items, in.Subtotal, in.Tax, in.Total)
	if totals.Mismatch {
		logrus.WithFields(logrus.Fields{
			"customer_id": in.CustomerID,
			"subtotal":    totals.Subtotal.String(),
			"tax":         totals.Tax.String(),
			"total":       totals.Total.String(),
		}).Warn("invoice total differs from subtotal + tax")
	}

	inv := &models.Invoice{
		CustomerID: in.CustomerID,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Status:     string(status),
		DueDate:    in.DueDate,
		Notes:      in.Notes,
		Items:      items,
	}

	// --------------------------------------------------
	// Number + insert, retried on a duplicate number
	// --------------------------------------------------
	if err := uc.insertWithUniqueNumber(ctx, inv); err != nil {
		return nil, err
	}

	created, err := uc.repo.Get(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: created.ID.String(),
		Metadata: map[string]any{
			"invoice_number": created.InvoiceNumber,
			"total":          created.Total.String(),
			"total_mismatch": totals.Mismatch,
		},
	})

	return created, nil
}

func (uc *CreateInvoice) insertWithUniqueNumber(ctx context.Context, inv *models.Invoice) error {
	now := uc.now().In(timezone.Location(uc.tz))

	for attempt := 1; attempt <= domain.MaxNumberAttempts; attempt++ {
		inv.InvoiceNumber = domain.GenerateNumber(now, uc.suffix)

		err := uc.repo.CreateWithItems(ctx, inv)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateNumber) {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"invoice_number": inv.InvoiceNumber,
			"attempt":        attempt,
		}).Warn("invoice number taken, regenerating")
	}

	return fmt.Errorf("no free invoice number after %d attempts", domain.MaxNumberAttempts)
}
