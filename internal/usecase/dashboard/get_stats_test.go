package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/dashboard"
)

type fakeRepo struct {
	counts map[string]int64
	sum    decimal.Decimal
	paid   []domain.PaidInvoice
	since  time.Time
	err    error
}

func (f *fakeRepo) CountRequestsByStatus(context.Context) (map[string]int64, error) {
	return f.counts, f.err
}

func (f *fakeRepo) SumPaidRevenue(context.Context) (decimal.Decimal, error) {
	return f.sum, nil
}

func (f *fakeRepo) ListPaidSince(_ context.Context, since time.Time) ([]domain.PaidInvoice, error) {
	f.since = since
	return f.paid, nil
}

func TestGetDashboardStats(t *testing.T) {
	repo := &fakeRepo{
		counts: map[string]int64{"pending": 3, "in_progress": 1, "completed": 2},
		sum:    decimal.RequireFromString("1500.50"),
		paid: []domain.PaidInvoice{
			{Total: decimal.NewFromInt(1000), CreatedAt: time.Date(2026, time.May, 3, 9, 0, 0, 0, time.UTC)},
		},
	}
	uc := NewGetDashboardStats(repo, "UTC")
	uc.now = func() time.Time { return time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC) }

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), got.TotalRequests)
	assert.Equal(t, int64(3), got.PendingRequests)
	assert.Equal(t, int64(2), got.CompletedProjects)
	assert.True(t, got.TotalRevenue.Equal(decimal.RequireFromString("1500.50")))

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), repo.since)
	require.Len(t, got.MonthlyRevenue, 6)
	assert.Equal(t, "May 2026", got.MonthlyRevenue[5].Month)
	assert.True(t, got.MonthlyRevenue[5].Revenue.Equal(decimal.NewFromInt(1000)))

	require.Len(t, got.RequestsByStatus, 4)
	assert.Equal(t, int64(0), got.RequestsByStatus[3].Count)
}

func TestGetDashboardStats_EmptyDatabase(t *testing.T) {
	uc := NewGetDashboardStats(&fakeRepo{counts: map[string]int64{}, sum: decimal.Zero}, "UTC")

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalRequests)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.Len(t, got.MonthlyRevenue, 6)
}

func TestGetDashboardStats_PropagatesErrors(t *testing.T) {
	uc := NewGetDashboardStats(&fakeRepo{err: errors.New("db down")}, "UTC")

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}
