package options

import "fmt"

// ConsistencyKind identifies which structural check a catalog write failed.
type ConsistencyKind string

const (
	KindDuplicateOptionID           ConsistencyKind = "duplicate_option_id"
	KindEmptyOptionValues           ConsistencyKind = "empty_option_values"
	KindDuplicateOptionValue        ConsistencyKind = "duplicate_option_value"
	KindDuplicateVariantID          ConsistencyKind = "duplicate_variant_id"
	KindUnknownOptionReference      ConsistencyKind = "unknown_option_reference"
	KindMissingOptionInVariant      ConsistencyKind = "missing_option_in_variant"
	KindExtraOptionInVariant        ConsistencyKind = "extra_option_in_variant"
	KindValueNotInDomain            ConsistencyKind = "value_not_in_domain"
	KindDuplicateVariantCombination ConsistencyKind = "duplicate_variant_combination"
	KindNegativePriceOrStock        ConsistencyKind = "negative_price_or_stock"
)

// ConsistencyError reports the first structural defect found in a proposed
// (options, variants) pair. It names the offending option or variant so the
// write path can surface an actionable message.
type ConsistencyError struct {
	Kind      ConsistencyKind
	OptionID  string
	VariantID string
	Value     string
}

func (e *ConsistencyError) Error() string {
	switch {
	case e.VariantID != "" && e.OptionID != "" && e.Value != "":
		return fmt.Sprintf("catalog inconsistency %s: variant %q option %q value %q", e.Kind, e.VariantID, e.OptionID, e.Value)
	case e.VariantID != "" && e.OptionID != "":
		return fmt.Sprintf("catalog inconsistency %s: variant %q option %q", e.Kind, e.VariantID, e.OptionID)
	case e.VariantID != "":
		return fmt.Sprintf("catalog inconsistency %s: variant %q", e.Kind, e.VariantID)
	case e.OptionID != "" && e.Value != "":
		return fmt.Sprintf("catalog inconsistency %s: option %q value %q", e.Kind, e.OptionID, e.Value)
	case e.OptionID != "":
		return fmt.Sprintf("catalog inconsistency %s: option %q", e.Kind, e.OptionID)
	default:
		return fmt.Sprintf("catalog inconsistency %s", e.Kind)
	}
}

// SelectionKind identifies a malformed selection input. These indicate a bad
// client request, not a catalog defect.
type SelectionKind string

const (
	SelectionUnknownOption    SelectionKind = "unknown_option"
	SelectionValueNotInDomain SelectionKind = "value_not_in_domain"
)

// SelectionError rejects a selection referencing undeclared options or
// out-of-domain values.
type SelectionError struct {
	Kind     SelectionKind
	OptionID string
	Value    string
}

func (e *SelectionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid selection %s: option %q value %q", e.Kind, e.OptionID, e.Value)
	}
	return fmt.Sprintf("invalid selection %s: option %q", e.Kind, e.OptionID)
}

// BindKind identifies why a line item could not be materialized.
type BindKind string

const (
	BindIncompleteSelection BindKind = "incomplete_selection"
	BindInsufficientStock   BindKind = "insufficient_stock"
	BindInvalidQuantity     BindKind = "invalid_quantity"
)

// BindError rejects a bind attempt. The binder never clamps quantity or
// substitutes a different variant.
type BindError struct {
	Kind  BindKind
	Qty   int
	Stock int
}

func (e *BindError) Error() string {
	switch e.Kind {
	case BindInsufficientStock:
		return fmt.Sprintf("bind rejected %s: quantity %d exceeds stock %d", e.Kind, e.Qty, e.Stock)
	case BindInvalidQuantity:
		return fmt.Sprintf("bind rejected %s: quantity %d", e.Kind, e.Qty)
	default:
		return fmt.Sprintf("bind rejected %s", e.Kind)
	}
}
