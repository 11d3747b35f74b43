package options

import "testing"

func validFixture() ([]Option, []Variant) {
	opts := []Option{
		{ID: "region", Name: "Region", Values: []string{"EU", "US"}},
		{ID: "tier", Name: "Tier", Values: []string{"Standard", "Safe"}},
	}
	variants := []Variant{
		{ID: "v-eu-std", Selected: map[string]string{"region": "EU", "tier": "Standard"}, PriceCents: 1000, Stock: 5},
		{ID: "v-eu-safe", Selected: map[string]string{"region": "EU", "tier": "Safe"}, PriceCents: 1500, Stock: 0},
		{ID: "v-us-std", Selected: map[string]string{"region": "US", "tier": "Standard"}, PriceCents: 1200, Stock: 3},
	}
	return opts, variants
}

func TestValidate_AcceptsConsistentPair(t *testing.T) {
	opts, variants := validFixture()
	if err := Validate(opts, variants); err != nil {
		t.Fatalf("expected valid pair, got %v", err)
	}

	// idempotent: re-validating an accepted pair always succeeds
	if err := Validate(opts, variants); err != nil {
		t.Fatalf("expected revalidation to succeed, got %v", err)
	}
}

func TestValidate_OptionlessItem(t *testing.T) {
	t.Run("empty variant table is valid", func(t *testing.T) {
		if err := Validate(nil, nil); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("any variant is rejected", func(t *testing.T) {
		variants := []Variant{{ID: "v-1", Selected: map[string]string{}, PriceCents: 500, Stock: 1}}
		err := Validate(nil, variants)
		if err == nil || err.Kind != KindExtraOptionInVariant {
			t.Fatalf("expected %s, got %v", KindExtraOptionInVariant, err)
		}
		if err.VariantID != "v-1" {
			t.Fatalf("expected offending variant v-1, got %q", err.VariantID)
		}
	})
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(opts []Option, variants []Variant) ([]Option, []Variant)
		wantKind ConsistencyKind
	}{
		{
			name: "duplicate option id",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				opts = append(opts, Option{ID: "region", Name: "Region copy", Values: []string{"AS"}})
				return opts, variants
			},
			wantKind: KindDuplicateOptionID,
		},
		{
			name: "empty option values",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				opts[1].Values = nil
				return opts, variants
			},
			wantKind: KindEmptyOptionValues,
		},
		{
			name: "duplicate option value",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				opts[0].Values = []string{"EU", "US", "EU"}
				return opts, variants
			},
			wantKind: KindDuplicateOptionValue,
		},
		{
			name: "duplicate variant id",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants[2].ID = variants[0].ID
				return opts, variants
			},
			wantKind: KindDuplicateVariantID,
		},
		{
			name: "unknown option reference",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants[0].Selected["warranty"] = "1y"
				return opts, variants
			},
			wantKind: KindUnknownOptionReference,
		},
		{
			name: "missing option in variant",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				delete(variants[1].Selected, "tier")
				return opts, variants
			},
			wantKind: KindMissingOptionInVariant,
		},
		{
			name: "value not in domain",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants[2].Selected["region"] = "AS"
				return opts, variants
			},
			wantKind: KindValueNotInDomain,
		},
		{
			name: "duplicate variant combination",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants = append(variants, Variant{
					ID:         "v-us-std-2",
					Selected:   map[string]string{"region": "US", "tier": "Standard"},
					PriceCents: 1300,
					Stock:      1,
				})
				return opts, variants
			},
			wantKind: KindDuplicateVariantCombination,
		},
		{
			name: "negative price",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants[0].PriceCents = -1
				return opts, variants
			},
			wantKind: KindNegativePriceOrStock,
		},
		{
			name: "negative stock",
			mutate: func(opts []Option, variants []Variant) ([]Option, []Variant) {
				variants[2].Stock = -3
				return opts, variants
			},
			wantKind: KindNegativePriceOrStock,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts, variants := validFixture()
			opts, variants = tc.mutate(opts, variants)

			err := Validate(opts, variants)
			if err == nil {
				t.Fatalf("expected %s, got nil", tc.wantKind)
			}
			if err.Kind != tc.wantKind {
				t.Fatalf("expected kind %s, got %s (%v)", tc.wantKind, err.Kind, err)
			}
		})
	}
}

func TestValidate_NamesOffender(t *testing.T) {
	opts, variants := validFixture()
	delete(variants[1].Selected, "tier")

	err := Validate(opts, variants)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.VariantID != "v-eu-safe" || err.OptionID != "tier" {
		t.Fatalf("expected variant v-eu-safe option tier, got variant %q option %q", err.VariantID, err.OptionID)
	}
}
