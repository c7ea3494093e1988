package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Actor  string `gorm:"size:100" json:"actor"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50;index" json:"entity"`
	EntityID string         `gorm:"size:64" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
