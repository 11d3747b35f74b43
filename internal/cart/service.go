package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gameden/gameden-backend/internal/catalog"
	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/db"
	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/enums"
	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
)

// Service exposes cart mutation and read operations for one shopper session.
type Service interface {
	AddLineItem(ctx context.Context, sessionID string, input AddLineItemInput) (*CartDTO, error)
	RemoveLineItem(ctx context.Context, sessionID string, lineItemID uuid.UUID) (*CartDTO, error)
	GetCart(ctx context.Context, sessionID string) (*CartDTO, error)
}

// AddLineItemInput carries one add-to-cart request. The selection is
// re-resolved server side against the current snapshot before binding, so
// stale client state can never price a line item.
type AddLineItemInput struct {
	Slug      string
	Selection map[string]string
	Qty       int
}

type catalogReader interface {
	GetItemDetailBySlug(ctx context.Context, slug string) (*models.CatalogItem, error)
}

type service struct {
	repo     *Repository
	items    catalogReader
	dbClient *db.Client
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, items catalogReader, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, items: items, dbClient: dbClient}, nil
}

// AddLineItem re-resolves the selection, binds it, and persists the snapshot.
func (s *service) AddLineItem(ctx context.Context, sessionID string, input AddLineItemInput) (*CartDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	item, err := s.items.GetItemDetailBySlug(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
	}

	line, err := buildLineItem(item, input.Selection, input.Qty)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := txRepo.LockBySession(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock cart")
		}
		if cart.Status != enums.CartStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is no longer active")
		}

		row := &models.CartItem{
			CartID:         cart.ID,
			CatalogItemID:  item.ID,
			ItemSlug:       line.ItemSlug,
			ItemTitle:      line.ItemTitle,
			Selected:       line.Selected,
			UnitPriceCents: line.UnitPriceCents,
			Qty:            line.Qty,
			LineTotalCents: line.LineTotalCents,
		}
		if line.VariantID != "" {
			variantID := line.VariantID
			row.VariantID = &variantID
		}
		if _, err := txRepo.InsertItem(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
		}

		subtotal, err := txRepo.SumLineTotals(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sum line totals")
		}
		if err := txRepo.UpdateSubtotal(ctx, cart.ID, subtotal); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update subtotal")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add line item")
	}

	return s.GetCart(ctx, sessionID)
}

// RemoveLineItem deletes one line item and recomputes the subtotal.
func (s *service) RemoveLineItem(ctx context.Context, sessionID string, lineItemID uuid.UUID) (*CartDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := txRepo.LockBySession(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock cart")
		}
		if cart.Status != enums.CartStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is no longer active")
		}

		if err := txRepo.DeleteItem(ctx, cart.ID, lineItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
		}

		subtotal, err := txRepo.SumLineTotals(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sum line totals")
		}
		if err := txRepo.UpdateSubtotal(ctx, cart.ID, subtotal); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update subtotal")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove line item")
	}

	return s.GetCart(ctx, sessionID)
}

// GetCart returns the session's cart, or an empty cart shape when none exists.
func (s *service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	cart, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartDTO{
				SessionID:       sessionID,
				Status:          string(enums.CartStatusActive),
				Items:           []CartLineDTO{},
				SubtotalDisplay: displayAmount(0),
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return NewCartDTO(cart), nil
}

// buildLineItem re-runs resolution against the snapshot and binds the result.
func buildLineItem(item *models.CatalogItem, selection map[string]string, qty int) (*options.LineItem, error) {
	opts := catalog.EngineOptions(item)
	variants := catalog.EngineVariants(item)

	res, selErr := options.Resolve(opts, variants, options.Selection(selection), enums.AvailabilityHideSoldOut)
	if selErr != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, selErr.Error()).WithDetails(map[string]any{
			"kind":      string(selErr.Kind),
			"option_id": selErr.OptionID,
		})
	}
	if res.State == options.StateUnavailable {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "selected combination is unavailable")
	}

	line, bindErr := options.Bind(catalog.EngineItemRef(item), res, qty)
	if bindErr != nil {
		return nil, bindError(bindErr)
	}
	return line, nil
}

// bindError maps binder rejections onto the shared error surface with
// shopper-actionable messages.
func bindError(err *options.BindError) error {
	switch err.Kind {
	case options.BindInsufficientStock:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "quantity exceeds available stock").WithDetails(map[string]any{
			"qty":   err.Qty,
			"stock": err.Stock,
		})
	case options.BindInvalidQuantity:
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "finish selecting options before adding to cart")
	}
}
