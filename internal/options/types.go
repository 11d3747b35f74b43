// Package options implements the option/variant consistency and resolution
// engine for configurable catalog items. Everything in this package is a pure
// function over an immutable snapshot of an item's declared options and
// enumerated variants; callers own fetching the snapshot and persisting any
// accepted write.
package options

import "github.com/gameden/gameden-backend/pkg/enums"

// Option is one configurable dimension of a catalog item. Values is the
// ordered, closed domain of allowed choices.
type Option struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variant is one concrete priced, stocked combination. Selected maps option id
// to exactly one value from that option's domain.
type Variant struct {
	ID         string            `json:"id"`
	Selected   map[string]string `json:"selected"`
	PriceCents int               `json:"price_cents"`
	Stock      int               `json:"stock"`
}

// Selection is a shopper's in-progress or complete choice of values, keyed by
// option id. Unselected options are absent, never present with an empty value.
type Selection map[string]string

// ResolutionState is the terminal state of a resolution request.
type ResolutionState string

const (
	// StateResolved means the selection addresses exactly one variant.
	StateResolved ResolutionState = "resolved"
	// StateUnavailable means the complete selection matches no purchasable variant.
	StateUnavailable ResolutionState = "unavailable"
	// StatePartial means the selection is incomplete; Remaining describes what
	// is still reachable per unselected option.
	StatePartial ResolutionState = "partial"
)

// ValueState describes one declared value of an unselected option after
// constraint propagation. Unreachable values stay in the list so the UI can
// disable them instead of dropping them from the declared domain.
type ValueState struct {
	Value     string `json:"value"`
	Reachable bool   `json:"reachable"`
	// SoldOut is set under the show_sold_out_disabled policy when every
	// candidate carrying this value has zero stock.
	SoldOut bool `json:"sold_out"`
}

// Resolution is the outcome of resolving a selection against a catalog snapshot.
type Resolution struct {
	State  ResolutionState          `json:"state"`
	Policy enums.AvailabilityPolicy `json:"policy"`
	// Variant is set when State is resolved. It is nil for option-less items,
	// which resolve to the item itself at its base price.
	Variant *Variant `json:"variant,omitempty"`
	// Remaining holds the per-option value states when State is partial,
	// keyed by unselected option id.
	Remaining map[string][]ValueState `json:"remaining,omitempty"`
	// Selection echoes the input selection the resolution was computed from.
	Selection Selection `json:"selection"`
}

// ItemRef carries the catalog item fields the binder needs. HasOptions tells
// the binder whether a resolved variant is required or the item's own price
// and stock apply.
type ItemRef struct {
	ID             string
	Slug           string
	Title          string
	BasePriceCents int
	Stock          int
	HasOptions     bool
}

// LineItem is the immutable priced snapshot produced by Bind. Stock is not
// reserved here; checkout re-checks it transactionally.
type LineItem struct {
	CatalogItemID  string            `json:"catalog_item_id"`
	VariantID      string            `json:"variant_id,omitempty"`
	ItemSlug       string            `json:"item_slug"`
	ItemTitle      string            `json:"item_title"`
	Selected       map[string]string `json:"selected"`
	UnitPriceCents int               `json:"unit_price_cents"`
	Qty            int               `json:"qty"`
	LineTotalCents int               `json:"line_total_cents"`
}
