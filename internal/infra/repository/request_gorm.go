package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type RequestGormRepository struct {
	db *gorm.DB
}

func NewRequestGormRepository(db *gorm.DB) *RequestGormRepository {
	return &RequestGormRepository{db: db}
}

func withCustomerAndService(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").Preload("Service")
}

// --------------------------------------------------
// Create (customer find-or-create + request)
// --------------------------------------------------

func (r *RequestGormRepository) CreateWithCustomer(
	ctx context.Context,
	customer *models.Customer,
	req *models.ServiceRequest,
) (bool, error) {

	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Customer
		if err := tx.
			Where("email = ?", customer.Email).
			Order("created_at ASC").
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			*customer = existing[0]
		} else {
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			created = true
		}

		req.CustomerID = customer.ID
		return tx.Omit(clause.Associations).Create(req).Error
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (r *RequestGormRepository) ServiceExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *RequestGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := withCustomerAndService(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestGormRepository) List(ctx context.Context) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	if err := withCustomerAndService(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Status
// --------------------------------------------------

func (r *RequestGormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*RequestGormRepository)(nil)
