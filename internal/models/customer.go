package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is created from quote requests and referenced by invoices.
// Email is the natural key used to reuse an existing row.
type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string  `gorm:"size:150;not null" json:"name"`
	Email   string  `gorm:"size:255;index" json:"email"`
	Phone   string  `gorm:"size:30" json:"phone"`
	Address *string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
