package options

// Bind materializes a resolved selection into an immutable priced line item.
// It enforces only what it can see synchronously: quantity is positive and
// does not exceed the stock visible in the snapshot. Checkout re-checks stock
// inside its own transaction since the catalog can move between bind and
// purchase.
func Bind(item ItemRef, res *Resolution, qty int) (*LineItem, *BindError) {
	if qty <= 0 {
		return nil, &BindError{Kind: BindInvalidQuantity, Qty: qty}
	}

	if res == nil || res.State != StateResolved {
		return nil, &BindError{Kind: BindIncompleteSelection}
	}

	line := &LineItem{
		CatalogItemID: item.ID,
		ItemSlug:      item.Slug,
		ItemTitle:     item.Title,
		Qty:           qty,
	}

	if item.HasOptions {
		if res.Variant == nil {
			return nil, &BindError{Kind: BindIncompleteSelection}
		}
		if qty > res.Variant.Stock {
			return nil, &BindError{Kind: BindInsufficientStock, Qty: qty, Stock: res.Variant.Stock}
		}
		line.VariantID = res.Variant.ID
		line.UnitPriceCents = res.Variant.PriceCents
		line.Selected = cloneSelection(Selection(res.Variant.Selected))
	} else {
		if qty > item.Stock {
			return nil, &BindError{Kind: BindInsufficientStock, Qty: qty, Stock: item.Stock}
		}
		line.UnitPriceCents = item.BasePriceCents
		line.Selected = map[string]string{}
	}

	line.LineTotalCents = line.UnitPriceCents * qty
	return line, nil
}
