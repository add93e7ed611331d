package ui

import (
	"testing"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/store"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars ok", 20, "exactly ten chars ok"},
		{"this is far too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	m := Model{currency: "₺"}
	if got := m.formatMoney(api.Money("149.9")); got != "₺149.90" {
		t.Fatalf("formatMoney = %q, want ₺149.90", got)
	}
	if got := m.formatMoney(api.Money("")); got != "₺0.00" {
		t.Fatalf("formatMoney(empty) = %q, want ₺0.00", got)
	}
}

func TestLineLabel(t *testing.T) {
	if got := lineLabel(store.Line{ProductID: 3, Name: "Kahve"}); got != "Kahve" {
		t.Fatalf("lineLabel = %q, want Kahve", got)
	}
	if got := lineLabel(store.Line{ProductID: 3}); got != "product #3" {
		t.Fatalf("lineLabel = %q, want product #3 for nameless guest line", got)
	}
}

func TestClampSel(t *testing.T) {
	tests := []struct {
		sel, count, want int
	}{
		{0, 0, 0},
		{2, 5, 2},
		{5, 5, 4},
		{-1, 5, 0},
		{3, 1, 0},
	}
	for _, tt := range tests {
		if got := clampSel(tt.sel, tt.count); got != tt.want {
			t.Errorf("clampSel(%d, %d) = %d, want %d", tt.sel, tt.count, got, tt.want)
		}
	}
}
