package enums

import "fmt"

// AvailabilityPolicy controls how sold-out variants are surfaced during resolution.
type AvailabilityPolicy string

const (
	// AvailabilityHideSoldOut removes zero-stock variants from consideration entirely.
	AvailabilityHideSoldOut AvailabilityPolicy = "hide_sold_out"
	// AvailabilityShowSoldOutDisabled keeps zero-stock variants visible but flagged unselectable.
	AvailabilityShowSoldOutDisabled AvailabilityPolicy = "show_sold_out_disabled"
)

var validAvailabilityPolicies = []AvailabilityPolicy{
	AvailabilityHideSoldOut,
	AvailabilityShowSoldOutDisabled,
}

// String implements fmt.Stringer.
func (p AvailabilityPolicy) String() string {
	return string(p)
}

// IsValid reports whether the value is a known AvailabilityPolicy.
func (p AvailabilityPolicy) IsValid() bool {
	for _, candidate := range validAvailabilityPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseAvailabilityPolicy converts raw input into an AvailabilityPolicy.
func ParseAvailabilityPolicy(value string) (AvailabilityPolicy, error) {
	for _, candidate := range validAvailabilityPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability policy %q", value)
}
