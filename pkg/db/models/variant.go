package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/gameden/gameden-backend/pkg/db/types"
)

// Variant is one concrete priced, stocked combination of option values.
// Selected maps option opt_id to exactly one of that option's declared values.
type Variant struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID     uuid.UUID         `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_variants_item_var"`
	VarID      string            `gorm:"column:var_id;not null;uniqueIndex:idx_variants_item_var"`
	Selected   dbtypes.StringMap `gorm:"column:selected;type:jsonb;not null"`
	PriceCents int               `gorm:"column:price_cents;not null"`
	Stock      int               `gorm:"column:stock;not null;default:0"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
