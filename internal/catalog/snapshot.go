package catalog

import (
	"sort"

	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/db/models"
)

// EngineOptions converts persisted option rows into the engine's snapshot
// form, ordered by position.
func EngineOptions(item *models.CatalogItem) []options.Option {
	rows := make([]models.ProductOption, len(item.Options))
	copy(rows, item.Options)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	out := make([]options.Option, 0, len(rows))
	for _, row := range rows {
		out = append(out, options.Option{
			ID:     row.OptID,
			Name:   row.Name,
			Values: append([]string(nil), row.Values...),
		})
	}
	return out
}

// EngineVariants converts persisted variant rows into the engine's snapshot form.
func EngineVariants(item *models.CatalogItem) []options.Variant {
	out := make([]options.Variant, 0, len(item.Variants))
	for _, row := range item.Variants {
		out = append(out, options.Variant{
			ID:         row.VarID,
			Selected:   row.Selected.Clone(),
			PriceCents: row.PriceCents,
			Stock:      row.Stock,
		})
	}
	return out
}

// EngineItemRef carries the item fields the binder needs.
func EngineItemRef(item *models.CatalogItem) options.ItemRef {
	return options.ItemRef{
		ID:             item.ID.String(),
		Slug:           item.Slug,
		Title:          item.Title,
		BasePriceCents: item.BasePriceCents,
		Stock:          item.Stock,
		HasOptions:     len(item.Options) > 0,
	}
}
