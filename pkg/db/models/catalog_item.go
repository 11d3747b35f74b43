package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gameden/gameden-backend/pkg/enums"
)

// CatalogItem represents a sellable listing with its declared option space.
type CatalogItem struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug           string             `gorm:"column:slug;not null;uniqueIndex"`
	Title          string             `gorm:"column:title;not null"`
	Description    *string            `gorm:"column:description"`
	Category       enums.ItemCategory `gorm:"column:category;not null"`
	BasePriceCents int                `gorm:"column:base_price_cents;not null"`
	// Stock applies only when the item declares no options; variants carry
	// their own stock otherwise.
	Stock     int             `gorm:"column:stock;not null;default:0"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	Options   []ProductOption `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Variants  []Variant       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
