package options

import (
	"sort"
	"strings"
)

// Validate checks a proposed (options, variants) pair for structural
// soundness. It short-circuits on the first failure and never repairs or
// drops invalid data; a non-nil error must block the write.
//
// An item with no declared options must carry an empty variant table; its
// price and stock live on the item row itself.
func Validate(opts []Option, variants []Variant) *ConsistencyError {
	if err := validateOptions(opts); err != nil {
		return err
	}

	if err := validateVariantIDs(variants); err != nil {
		return err
	}

	if len(opts) == 0 {
		if len(variants) > 0 {
			return &ConsistencyError{Kind: KindExtraOptionInVariant, VariantID: variants[0].ID}
		}
		return nil
	}

	declared := make(map[string][]string, len(opts))
	for _, opt := range opts {
		declared[opt.ID] = opt.Values
	}

	seenCombos := make(map[string]string, len(variants))
	for _, v := range variants {
		if err := validateVariantShape(opts, declared, v); err != nil {
			return err
		}

		key := comboKey(opts, v.Selected)
		if _, ok := seenCombos[key]; ok {
			return &ConsistencyError{Kind: KindDuplicateVariantCombination, VariantID: v.ID}
		}
		seenCombos[key] = v.ID
	}

	for _, v := range variants {
		if v.PriceCents < 0 || v.Stock < 0 {
			return &ConsistencyError{Kind: KindNegativePriceOrStock, VariantID: v.ID}
		}
	}

	return nil
}

func validateOptions(opts []Option) *ConsistencyError {
	seenIDs := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		if _, ok := seenIDs[opt.ID]; ok {
			return &ConsistencyError{Kind: KindDuplicateOptionID, OptionID: opt.ID}
		}
		seenIDs[opt.ID] = struct{}{}
	}

	for _, opt := range opts {
		if len(opt.Values) == 0 {
			return &ConsistencyError{Kind: KindEmptyOptionValues, OptionID: opt.ID}
		}
		seenValues := make(map[string]struct{}, len(opt.Values))
		for _, value := range opt.Values {
			if _, ok := seenValues[value]; ok {
				return &ConsistencyError{Kind: KindDuplicateOptionValue, OptionID: opt.ID, Value: value}
			}
			seenValues[value] = struct{}{}
		}
	}

	return nil
}

func validateVariantIDs(variants []Variant) *ConsistencyError {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, ok := seen[v.ID]; ok {
			return &ConsistencyError{Kind: KindDuplicateVariantID, VariantID: v.ID}
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}

func validateVariantShape(opts []Option, declared map[string][]string, v Variant) *ConsistencyError {
	// undeclared references first, reported in a stable order
	keys := make([]string, 0, len(v.Selected))
	for key := range v.Selected {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := declared[key]; !ok {
			return &ConsistencyError{Kind: KindUnknownOptionReference, VariantID: v.ID, OptionID: key}
		}
	}

	for _, opt := range opts {
		value, ok := v.Selected[opt.ID]
		if !ok {
			return &ConsistencyError{Kind: KindMissingOptionInVariant, VariantID: v.ID, OptionID: opt.ID}
		}
		if !containsValue(opt.Values, value) {
			return &ConsistencyError{Kind: KindValueNotInDomain, VariantID: v.ID, OptionID: opt.ID, Value: value}
		}
	}

	return nil
}

// comboKey canonicalizes a variant's selected values in declared option order
// so duplicate combinations collide regardless of map iteration order.
func comboKey(opts []Option, selected map[string]string) string {
	parts := make([]string, 0, len(opts))
	for _, opt := range opts {
		parts = append(parts, opt.ID+"\x1e"+selected[opt.ID])
	}
	return strings.Join(parts, "\x1f")
}

func containsValue(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
