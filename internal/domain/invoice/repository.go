package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timbermagic/timbermagic-api/internal/models"
)

type Repository interface {
	// -------- Customer --------
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)

	// -------- Invoice (create) --------
	// CreateWithItems persists inv and its items atomically. A duplicate
	// invoice_number surfaces as ErrDuplicateNumber.
	CreateWithItems(ctx context.Context, inv *models.Invoice) error

	// -------- Invoice (read) --------
	Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
	ListOverdue(ctx context.Context, today time.Time) ([]models.Invoice, error)

	// -------- Invoice (update) --------
	// Update writes the non-nil fields of patch and, when items is non-nil,
	// replaces the item set, all in one transaction.
	Update(ctx context.Context, id uuid.UUID, patch Patch, items []models.InvoiceItem) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// Patch holds the columns an update may touch; nil means unchanged.
type Patch struct {
	CustomerID *uuid.UUID
	Subtotal   *decimal.Decimal
	Tax        *decimal.Decimal
	Total      *decimal.Decimal
	Status     *Status
	DueDate    *models.Date
	Notes      *string
}

func (p Patch) Empty() bool {
	return p.CustomerID == nil && p.Subtotal == nil && p.Tax == nil && p.Total == nil &&
		p.Status == nil && p.DueDate == nil && p.Notes == nil
}
