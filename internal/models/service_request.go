package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequest is a quote request submitted from the public site.
type ServiceRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	ServiceID  *uuid.UUID `gorm:"type:uuid;index" json:"service_id"`

	Description string `gorm:"type:text;not null" json:"description"`
	Status      string `gorm:"size:20;not null;default:pending;index" json:"status"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL" json:"service,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceRequest) TableName() string {
	return "requests"
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
