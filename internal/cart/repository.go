package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/enums"
)

// Repository wires together cart persistence helpers.
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

// FindBySession loads the active cart with its items.
func (r *Repository) FindBySession(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	var cart models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&cart, "session_id = ?", sessionID).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindOrCreateBySession returns the session's cart, creating an empty active
// one when none exists yet.
func (r *Repository) FindOrCreateBySession(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	cart, err := r.FindBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.CartRecord{
		SessionID: sessionID,
		Status:    enums.CartStatusActive,
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

// InsertItem appends a bound line item snapshot to the cart.
func (r *Repository) InsertItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes one line item from the cart.
func (r *Repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSubtotal persists the recomputed subtotal.
func (r *Repository) UpdateSubtotal(ctx context.Context, cartID uuid.UUID, subtotalCents int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", cartID).
		Update("subtotal_cents", subtotalCents).
		Error
}

// SumLineTotals recomputes the subtotal from the persisted line items.
func (r *Repository) SumLineTotals(ctx context.Context, cartID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("SUM(line_total_cents)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// LockBySession takes a row lock on the cart for the session, creating it
// first when missing. Serializes concurrent mutations of the same cart.
func (r *Repository) LockBySession(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	if _, err := r.FindOrCreateBySession(ctx, sessionID); err != nil {
		return nil, err
	}

	var cart models.CartRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "session_id = ?", sessionID).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
