package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductOption declares one configurable dimension of a catalog item.
// OptID is the stable opaque identifier variants reference; it is unique
// within the owning item, not globally.
type ProductOption struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID    uuid.UUID      `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_options_item_opt"`
	OptID     string         `gorm:"column:opt_id;not null;uniqueIndex:idx_options_item_opt"`
	Name      string         `gorm:"column:name;not null"`
	Position  int            `gorm:"column:position;not null;default:0"`
	Values    pq.StringArray `gorm:"column:values;type:text[];not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
