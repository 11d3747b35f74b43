package validators

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   map[string]string
	}{
		{
			name:   "no selection",
			target: "/items/x/resolve",
			want:   map[string]string{},
		},
		{
			name:   "multiple options",
			target: "/items/x/resolve?sel[region]=EU&sel[tier]=Safe",
			want:   map[string]string{"region": "EU", "tier": "Safe"},
		},
		{
			name:   "last value wins on repeats",
			target: "/items/x/resolve?sel[region]=EU&sel[region]=US",
			want:   map[string]string{"region": "US"},
		},
		{
			name:   "malformed keys ignored",
			target: "/items/x/resolve?sel[]=EU&sel=US&selregion]=AS&sel[region]=EU",
			want:   map[string]string{"region": "EU"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			got := ParseSelection(r)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v got %v", tt.want, got)
			}
		})
	}
}

func TestParseQueryInt(t *testing.T) {
	t.Run("default when absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/items", nil)
		got, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if err != nil || got != 25 {
			t.Fatalf("expected default 25, got %d err %v", got, err)
		}
	})

	t.Run("parses value", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/items?limit=10", nil)
		got, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if err != nil || got != 10 {
			t.Fatalf("expected 10, got %d err %v", got, err)
		}
	})

	t.Run("rejects non numeric", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/items?limit=ten", nil)
		if _, err := ParseQueryInt(r, "limit", 25, 1, 100); err == nil {
			t.Fatalf("expected error for non numeric value")
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/items?limit=500", nil)
		if _, err := ParseQueryInt(r, "limit", 25, 1, 100); err == nil {
			t.Fatalf("expected error for out of range value")
		}
	})
}
