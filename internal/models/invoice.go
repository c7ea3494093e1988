package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	InvoiceNumber string    `gorm:"size:20;not null;uniqueIndex" json:"invoice_number"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	Subtotal decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"tax"`
	Total    decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"total"`

	Status  string  `gorm:"size:20;not null;default:draft;index" json:"status"`
	DueDate Date    `gorm:"type:date" json:"due_date"`
	Notes   *string `gorm:"type:text" json:"notes"`

	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`

	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"total"`
	Position    int             `gorm:"not null;default:0" json:"position"`
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&it.ID)
	return nil
}
