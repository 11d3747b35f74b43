package storefront

import (
	"github.com/google/uuid"

	"github.com/gameden/gameden-backend/internal/catalog"
	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/db/models"
)

// ItemHeaderDTO is the item context returned with every resolution.
type ItemHeaderDTO struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	BasePriceCents int       `json:"base_price_cents"`
}

// ResolutionDTO is the payload the product surface renders after each
// selection change.
type ResolutionDTO struct {
	Item      ItemHeaderDTO                   `json:"item"`
	Options   []catalog.OptionDTO             `json:"options"`
	State     options.ResolutionState         `json:"state"`
	Variant   *catalog.VariantDTO             `json:"variant,omitempty"`
	Remaining map[string][]options.ValueState `json:"remaining,omitempty"`
	Selection map[string]string               `json:"selection"`
}

func newResolutionDTO(item *models.CatalogItem, opts []options.Option, res *options.Resolution) *ResolutionDTO {
	dto := &ResolutionDTO{
		Item: ItemHeaderDTO{
			ID:             item.ID,
			Slug:           item.Slug,
			Title:          item.Title,
			BasePriceCents: item.BasePriceCents,
		},
		Options:   make([]catalog.OptionDTO, 0, len(opts)),
		State:     res.State,
		Remaining: res.Remaining,
		Selection: res.Selection,
	}
	for _, opt := range opts {
		dto.Options = append(dto.Options, catalog.OptionDTO{ID: opt.ID, Name: opt.Name, Values: opt.Values})
	}
	if res.Variant != nil {
		dto.Variant = &catalog.VariantDTO{
			ID:         res.Variant.ID,
			Selected:   res.Variant.Selected,
			PriceCents: res.Variant.PriceCents,
			Stock:      res.Variant.Stock,
		}
	}
	return dto
}
