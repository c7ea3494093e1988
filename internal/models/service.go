package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	NameEN        string `gorm:"size:150;not null" json:"name_en"`
	NameHE        string `gorm:"size:150" json:"name_he"`
	DescriptionEN string `gorm:"type:text" json:"description_en"`
	DescriptionHE string `gorm:"type:text" json:"description_he"`

	PriceFrom decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"price_from"`
	PriceTo   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_to"`

	ImageURL string `gorm:"type:text" json:"image_url"`
	IsActive bool   `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// PriceRangeInverted reports a price_to lower than price_from.
func (s *Service) PriceRangeInverted() bool {
	return s.PriceTo != nil && s.PriceTo.LessThan(s.PriceFrom)
}
