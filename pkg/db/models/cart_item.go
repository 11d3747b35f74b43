package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/gameden/gameden-backend/pkg/db/types"
)

// CartItem is the immutable priced snapshot of one bound line item.
// Price and selection are frozen at bind time; checkout re-checks stock
// against the live catalog before converting the cart.
type CartItem struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID         `gorm:"column:cart_id;type:uuid;not null;index"`
	CatalogItemID  uuid.UUID         `gorm:"column:catalog_item_id;type:uuid;not null"`
	VariantID      *string           `gorm:"column:variant_id"`
	ItemSlug       string            `gorm:"column:item_slug;not null"`
	ItemTitle      string            `gorm:"column:item_title;not null"`
	Selected       dbtypes.StringMap `gorm:"column:selected;type:jsonb;not null"`
	UnitPriceCents int               `gorm:"column:unit_price_cents;not null"`
	Qty            int               `gorm:"column:qty;not null"`
	LineTotalCents int               `gorm:"column:line_total_cents;not null"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
