package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func withCustomerAndItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		})
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *InvoiceGormRepository) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *InvoiceGormRepository) CreateWithItems(ctx context.Context, inv *models.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
			return err
		}

		if len(inv.Items) == 0 {
			return nil
		}

		for i := range inv.Items {
			inv.Items[i].InvoiceID = inv.ID
		}
		return tx.Create(&inv.Items).Error
	})

	if isUniqueViolation(err) {
		return domain.ErrDuplicateNumber
	}
	return err
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *InvoiceGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := withCustomerAndItems(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := withCustomerAndItems(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceGormRepository) ListOverdue(ctx context.Context, today time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("status = ? AND due_date < ?", string(domain.StatusSent), today.Format(models.DateLayout)).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

func (r *InvoiceGormRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.Patch,
	items []models.InvoiceItem,
) error {

	updates := map[string]any{"updated_at": time.Now()}
	if patch.CustomerID != nil {
		updates["customer_id"] = *patch.CustomerID
	}
	if patch.Subtotal != nil {
		updates["subtotal"] = *patch.Subtotal
	}
	if patch.Tax != nil {
		updates["tax"] = *patch.Tax
	}
	if patch.Total != nil {
		updates["total"] = *patch.Total
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if items == nil {
			return nil
		}

		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].InvoiceID = id
		}
		return tx.Create(&items).Error
	})
}

func (r *InvoiceGormRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
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
var _ domain.Repository = (*InvoiceGormRepository)(nil)
