package options

import (
	"testing"

	"github.com/gameden/gameden-backend/pkg/enums"
)

func bindFixture(t *testing.T, sel Selection) (ItemRef, *Resolution) {
	t.Helper()
	opts, variants := validFixture()
	res, err := Resolve(opts, variants, sel, enums.AvailabilityHideSoldOut)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	item := ItemRef{
		ID:             "item-1",
		Slug:           "diamond-smurf",
		Title:          "Diamond Smurf Account",
		BasePriceCents: 900,
		HasOptions:     true,
	}
	return item, res
}

func TestBind_Succeeds(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "US", "tier": "Standard"})

	line, err := Bind(item, res, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.VariantID != "v-us-std" {
		t.Fatalf("expected v-us-std, got %q", line.VariantID)
	}
	if line.UnitPriceCents != 1200 || line.LineTotalCents != 3600 {
		t.Fatalf("expected 1200 * 3 = 3600, got unit %d total %d", line.UnitPriceCents, line.LineTotalCents)
	}
	if line.Selected["region"] != "US" || line.Selected["tier"] != "Standard" {
		t.Fatalf("expected frozen selection, got %v", line.Selected)
	}
	if line.CatalogItemID != "item-1" || line.ItemSlug != "diamond-smurf" {
		t.Fatalf("unexpected item snapshot: %+v", line)
	}
}

func TestBind_SnapshotIsIndependent(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "US", "tier": "Standard"})

	line, err := Bind(item, res, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res.Variant.Selected["region"] = "EU"
	if line.Selected["region"] != "US" {
		t.Fatal("bound selection must not alias the resolution")
	}
}

func TestBind_InsufficientStock(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "US", "tier": "Standard"})

	_, err := Bind(item, res, 4)
	if err == nil || err.Kind != BindInsufficientStock {
		t.Fatalf("expected %s, got %v", BindInsufficientStock, err)
	}
	if err.Qty != 4 || err.Stock != 3 {
		t.Fatalf("expected qty 4 stock 3, got %+v", err)
	}
}

func TestBind_InvalidQuantity(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "US", "tier": "Standard"})

	for _, qty := range []int{0, -2} {
		if _, err := Bind(item, res, qty); err == nil || err.Kind != BindInvalidQuantity {
			t.Fatalf("qty %d: expected %s, got %v", qty, BindInvalidQuantity, err)
		}
	}
}

func TestBind_IncompleteSelection(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "US"})

	_, err := Bind(item, res, 1)
	if err == nil || err.Kind != BindIncompleteSelection {
		t.Fatalf("expected %s, got %v", BindIncompleteSelection, err)
	}

	if _, err := Bind(item, nil, 1); err == nil || err.Kind != BindIncompleteSelection {
		t.Fatalf("nil resolution: expected %s, got %v", BindIncompleteSelection, err)
	}
}

func TestBind_UnavailableResolution(t *testing.T) {
	item, res := bindFixture(t, Selection{"region": "EU", "tier": "Safe"})

	if res.State != StateUnavailable {
		t.Fatalf("fixture expected unavailable, got %s", res.State)
	}
	_, err := Bind(item, res, 1)
	if err == nil || err.Kind != BindIncompleteSelection {
		t.Fatalf("expected %s, got %v", BindIncompleteSelection, err)
	}
}

func TestBind_OptionlessItem(t *testing.T) {
	item := ItemRef{
		ID:             "item-2",
		Slug:           "steam-gift-card",
		Title:          "Steam Gift Card",
		BasePriceCents: 2500,
		Stock:          10,
		HasOptions:     false,
	}
	res, selErr := Resolve(nil, nil, Selection{}, enums.AvailabilityHideSoldOut)
	if selErr != nil {
		t.Fatalf("unexpected resolve error: %v", selErr)
	}

	line, err := Bind(item, res, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.VariantID != "" {
		t.Fatalf("expected no variant id, got %q", line.VariantID)
	}
	if line.UnitPriceCents != 2500 || line.LineTotalCents != 5000 {
		t.Fatalf("expected base price pricing, got %+v", line)
	}

	if _, err := Bind(item, res, 11); err == nil || err.Kind != BindInsufficientStock {
		t.Fatalf("expected %s, got %v", BindInsufficientStock, err)
	}
}
