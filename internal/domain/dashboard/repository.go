package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaidInvoice is the projection the revenue buckets are built from.
type PaidInvoice struct {
	Total     decimal.Decimal
	CreatedAt time.Time
}

type Repository interface {
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
	SumPaidRevenue(ctx context.Context) (decimal.Decimal, error)
	ListPaidSince(ctx context.Context, since time.Time) ([]PaidInvoice, error)
}
