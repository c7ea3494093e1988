package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/dashboard"
	"github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

type statusCountRow struct {
	Status string
	Count  int64
}

func (r *DashboardGormRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *DashboardGormRepository) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", string(invoice.StatusPaid)).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *DashboardGormRepository) ListPaidSince(ctx context.Context, since time.Time) ([]domain.PaidInvoice, error) {
	var rows []domain.PaidInvoice
	if err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("total, created_at").
		Where("status = ? AND created_at >= ?", string(invoice.StatusPaid), since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*DashboardGormRepository)(nil)
