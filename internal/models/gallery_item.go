package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryItem struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TitleEN       string `gorm:"size:200;not null" json:"title_en"`
	TitleHE       string `gorm:"size:200" json:"title_he"`
	DescriptionEN string `gorm:"type:text" json:"description_en"`
	DescriptionHE string `gorm:"type:text" json:"description_he"`

	ImageURL     string `gorm:"type:text;not null" json:"image_url"`
	ThumbnailURL string `gorm:"type:text" json:"thumbnail_url"`
	Category     string `gorm:"size:50" json:"category"`
	IsFeatured   bool   `gorm:"not null;default:false;index" json:"is_featured"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (GalleryItem) TableName() string {
	return "gallery"
}

func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
