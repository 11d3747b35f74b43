package enums

import "fmt"

// ItemCategory represents the canonical catalog item categories the storefront sells.
type ItemCategory string

const (
	ItemCategoryGameAccount ItemCategory = "game_account"
	ItemCategoryCurrency    ItemCategory = "currency"
	ItemCategoryBoosting    ItemCategory = "boosting"
	ItemCategoryGiftCard    ItemCategory = "gift_card"
	ItemCategoryMerch       ItemCategory = "merch"
)

var validItemCategories = []ItemCategory{
	ItemCategoryGameAccount,
	ItemCategoryCurrency,
	ItemCategoryBoosting,
	ItemCategoryGiftCard,
	ItemCategoryMerch,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
