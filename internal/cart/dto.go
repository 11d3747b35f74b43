package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gameden/gameden-backend/pkg/db/models"
)

// CartDTO is the cart payload returned to clients. Display amounts are
// formatted from cents so clients never do float math on prices.
type CartDTO struct {
	ID              uuid.UUID     `json:"id"`
	SessionID       string        `json:"session_id"`
	Status          string        `json:"status"`
	Items           []CartLineDTO `json:"items"`
	SubtotalCents   int           `json:"subtotal_cents"`
	SubtotalDisplay string        `json:"subtotal_display"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CartLineDTO is one immutable bound line item.
type CartLineDTO struct {
	ID               uuid.UUID         `json:"id"`
	CatalogItemID    uuid.UUID         `json:"catalog_item_id"`
	VariantID        *string           `json:"variant_id,omitempty"`
	ItemSlug         string            `json:"item_slug"`
	ItemTitle        string            `json:"item_title"`
	Selected         map[string]string `json:"selected"`
	UnitPriceCents   int               `json:"unit_price_cents"`
	UnitPriceDisplay string            `json:"unit_price_display"`
	Qty              int               `json:"qty"`
	LineTotalCents   int               `json:"line_total_cents"`
	LineTotalDisplay string            `json:"line_total_display"`
	CreatedAt        time.Time         `json:"created_at"`
}

// NewCartDTO builds the response shape from the persisted cart.
func NewCartDTO(cart *models.CartRecord) *CartDTO {
	dto := &CartDTO{
		ID:              cart.ID,
		SessionID:       cart.SessionID,
		Status:          string(cart.Status),
		Items:           make([]CartLineDTO, 0, len(cart.Items)),
		SubtotalCents:   cart.SubtotalCents,
		SubtotalDisplay: displayAmount(cart.SubtotalCents),
		UpdatedAt:       cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		dto.Items = append(dto.Items, CartLineDTO{
			ID:               item.ID,
			CatalogItemID:    item.CatalogItemID,
			VariantID:        item.VariantID,
			ItemSlug:         item.ItemSlug,
			ItemTitle:        item.ItemTitle,
			Selected:         item.Selected.Clone(),
			UnitPriceCents:   item.UnitPriceCents,
			UnitPriceDisplay: displayAmount(item.UnitPriceCents),
			Qty:              item.Qty,
			LineTotalCents:   item.LineTotalCents,
			LineTotalDisplay: displayAmount(item.LineTotalCents),
			CreatedAt:        item.CreatedAt,
		})
	}
	return dto
}

func displayAmount(cents int) string {
	return decimal.NewFromInt(int64(cents)).Shift(-2).StringFixed(2)
}
