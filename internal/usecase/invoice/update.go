package invoice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type UpdateInvoiceInput struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID

	// Items replaces the whole item set when non-nil.
	Items *[]domain.ItemInput

	Subtotal *decimal.Decimal
	Tax      *decimal.Decimal
	Total    *decimal.Decimal

	Status  *string
	DueDate *models.Date
	Notes   *string

	Actor string
}

type UpdateInvoice struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateInvoice(repo domain.Repository, audit audit.Recorder) *UpdateInvoice {
	return &UpdateInvoice{repo: repo, audit: audit}
}

// Execute applies a partial update. Omitted fields keep their stored value.
// When items are replaced without a subtotal the subtotal is re-derived, and
// when subtotal or tax change without a total the total follows.
func (uc *UpdateInvoice) Execute(
	ctx context.Context,
	in UpdateInvoiceInput,
) (*models.Invoice, error) {

	current, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("invoice_not_found")
		}
		return nil, err
	}

	patch := domain.Patch{
		CustomerID: in.CustomerID,
		Subtotal:   in.Subtotal,
		Tax:        in.Tax,
		Total:      in.Total,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
	}

	// --------------------------------------------------
	// Status transition
	// --------------------------------------------------
	if in.Status != nil {
		next, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := domain.CanTransition(domain.Status(current.Status), next); err != nil {
			return nil, err
		}
		patch.Status = &next
	}

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	if in.CustomerID != nil && *in.CustomerID != current.CustomerID {
		ok, err := uc.repo.CustomerExists(ctx, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusinessf("unknown_customer", "customer_id does not reference a customer")
		}
	}

	// --------------------------------------------------
	// Items and derived totals
	// --------------------------------------------------
	var items []models.InvoiceItem
	if in.Items != nil {
		items, err = domain.BuildItems(*in.Items)
		if err != nil {
			return nil, err
		}
		if patch.Subtotal == nil {
			sum := domain.SumItems(items)
			patch.Subtotal = &sum
		}
	}

	subtotal, tax := current.Subtotal, current.Tax
	if patch.Subtotal != nil {
		subtotal = *patch.Subtotal
	}
	if patch.Tax != nil {
		tax = *patch.Tax
	}
	expected := subtotal.Add(tax)

	if patch.Total == nil && (patch.Subtotal != nil || patch.Tax != nil) {
		patch.Total = &expected
	}
	if patch.Total != nil && !patch.Total.Equal(expected) {
		logrus.WithFields(logrus.Fields{
			"invoice_id": in.ID,
			"expected":   expected.String(),
			"total":      patch.Total.String(),
		}).Warn("invoice total differs from subtotal + tax")
	}

	if err := uc.repo.Update(ctx, in.ID, patch, items); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("invoice_not_found")
		}
		return nil, err
	}

	updated, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{"items_replaced": in.Items != nil}
	if patch.Status != nil {
		meta["from"] = current.Status
		meta["to"] = string(*patch.Status)
	}
	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "invoice_updated",
		Entity:   "invoice",
		EntityID: in.ID.String(),
		Metadata: meta,
	})

	return updated, nil
}
