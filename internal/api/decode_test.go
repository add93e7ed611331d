package api

import (
	"encoding/json"
	"testing"
)

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name string
		body string
		keys []string
		want int
	}{
		{"bare array", `[{"a":1},{"a":2}]`, []string{"results"}, 2},
		{"first key wins", `{"cart":[{"a":1}]}`, []string{"cart", "results"}, 1},
		{"later key", `{"results":[{"a":1}]}`, []string{"cart", "results"}, 1},
		{"unknown shape", `{"something":"else"}`, []string{"results"}, 0},
		{"scalar", `42`, []string{"results"}, 0},
		{"empty", ``, []string{"results"}, 0},
		{"malformed", `[{`, []string{"results"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeList([]byte(tt.body), tt.keys...)
			if len(got) != tt.want {
				t.Fatalf("normalizeList = %d rows, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMoney_Decode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"quoted decimal", `"149.90"`, 149.90},
		{"bare number", `149.9`, 149.9},
		{"integer", `200`, 200},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			if err := json.Unmarshal([]byte(tt.body), &m); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := m.Float(); got != tt.want {
				t.Fatalf("Float() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoney_FloatMalformed(t *testing.T) {
	if got := Money("not a number").Float(); got != 0 {
		t.Fatalf("Float() = %v, want 0", got)
	}
}

func TestCartLine_QuantityAliases(t *testing.T) {
	var viaQty CartLine
	if err := json.Unmarshal([]byte(`{"id":1,"product_id":2,"qty":3}`), &viaQty); err != nil {
		t.Fatalf("Unmarshal qty: %v", err)
	}
	if viaQty.Quantity != 3 {
		t.Fatalf("Quantity = %d, want 3 via qty alias", viaQty.Quantity)
	}

	var viaQuantity CartLine
	if err := json.Unmarshal([]byte(`{"id":1,"product_id":2,"quantity":4}`), &viaQuantity); err != nil {
		t.Fatalf("Unmarshal quantity: %v", err)
	}
	if viaQuantity.Quantity != 4 {
		t.Fatalf("Quantity = %d, want 4", viaQuantity.Quantity)
	}
}

func TestWishlistEntry_ProductShapes(t *testing.T) {
	var flat WishlistEntry
	if err := json.Unmarshal([]byte(`{"id":1,"product":7,"product_name":"Kahve"}`), &flat); err != nil {
		t.Fatalf("Unmarshal flat: %v", err)
	}
	if flat.ProductID != 7 {
		t.Fatalf("ProductID = %d, want 7 from bare id", flat.ProductID)
	}

	var nested WishlistEntry
	if err := json.Unmarshal([]byte(`{"id":1,"product":{"id":9,"name":"Çay"}}`), &nested); err != nil {
		t.Fatalf("Unmarshal nested: %v", err)
	}
	if nested.ProductID != 9 {
		t.Fatalf("ProductID = %d, want 9 from nested object", nested.ProductID)
	}
}
