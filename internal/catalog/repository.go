package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/enums"
	"github.com/gameden/gameden-backend/pkg/pagination"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	CreateItem(context.Context, *models.CatalogItem) (*models.CatalogItem, error)
	UpdateItem(context.Context, *models.CatalogItem) (*models.CatalogItem, error)
	DeleteItem(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.CatalogItem, error)
	GetItemDetail(context.Context, uuid.UUID) (*models.CatalogItem, error)
	GetItemDetailBySlug(context.Context, string) (*models.CatalogItem, error)
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the item without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemDetail fetches an item with its options and variants.
func (r *Repository) GetItemDetail(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants").
		First(&item, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemDetailBySlug fetches an item by slug with its options and variants.
func (r *Repository) GetItemDetailBySlug(ctx context.Context, slug string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants").
		First(&item, "slug = ?", slug).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new catalog item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates an existing catalog item row. Associations are written
// through ReplaceOptions/ReplaceVariants, never through Save.
func (r *Repository) UpdateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item by ID; FK cascades clean up options and variants.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CatalogItem{}).Error
}

// ReplaceOptions swaps all option rows for the item. Options and variants are
// replaced as a unit by the service, never independently persisted.
func (r *Repository) ReplaceOptions(ctx context.Context, itemID uuid.UUID, rows []models.ProductOption) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ProductOption{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// ReplaceVariants swaps all variant rows for the item.
func (r *Repository) ReplaceVariants(ctx context.Context, itemID uuid.UUID, rows []models.Variant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("item_id = ?", itemID).Delete(&models.Variant{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// itemListQuery captures list filters plus cursor pagination inputs.
type itemListQuery struct {
	Pagination pagination.Params
	Category   *enums.ItemCategory
	ActiveOnly bool
}

// ItemListResult is a cursor page of catalog summaries.
type ItemListResult struct {
	Items      []ItemSummaryDTO `json:"items"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

// ListItemSummaries returns a cursor page ordered by newest first.
func (r *Repository) ListItemSummaries(ctx context.Context, query itemListQuery) (*ItemListResult, error) {
	limit := pagination.NormalizeLimit(query.Pagination.Limit)
	buffered := pagination.LimitWithBuffer(query.Pagination.Limit)

	q := r.db.WithContext(ctx).Model(&models.CatalogItem{})
	if query.Category != nil {
		q = q.Where("category = ?", *query.Category)
	}
	if query.ActiveOnly {
		q = q.Where("is_active = TRUE")
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.CatalogItem
	if err := q.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, err
	}

	result := &ItemListResult{Items: make([]ItemSummaryDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		result.Items = append(result.Items, NewItemSummaryDTO(row))
	}
	if hasMore {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	return result, nil
}

// ListAllDetailed loads every item with associations, used by the audit job.
func (r *Repository) ListAllDetailed(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants").
		Order("created_at ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
