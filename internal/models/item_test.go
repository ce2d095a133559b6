package models

import "testing"

func TestItemTotalValue(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected float64
	}{
		{"whole numbers", Item{Quantity: 100, UnitPrice: 2.0}, 200.0},
		{"fractional quantity", Item{Quantity: 2.5, UnitPrice: 4.0}, 10.0},
		{"zero quantity", Item{Quantity: 0, UnitPrice: 9.99}, 0.0},
		{"zero price", Item{Quantity: 42, UnitPrice: 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.TotalValue(); got != tt.expected {
				t.Errorf("expected total value %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestItemLowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		expected bool
	}{
		{"well stocked", 100, false},
		{"exactly at threshold", 5, false},
		{"just below threshold", 4.99, true},
		{"empty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Quantity: tt.quantity}
			if got := item.LowStock(); got != tt.expected {
				t.Errorf("quantity %v: expected low stock %v, got %v", tt.quantity, tt.expected, got)
			}
		})
	}
}

func TestMovementDelta(t *testing.T) {
	if d := (Movement{Kind: KindEntry, Quantity: 7}).Delta(); d != 7 {
		t.Errorf("expected entry delta 7, got %v", d)
	}
	if d := (Movement{Kind: KindExit, Quantity: 7}).Delta(); d != -7 {
		t.Errorf("expected exit delta -7, got %v", d)
	}
	if d := (Movement{Kind: KindInit, Quantity: 7}).Delta(); d != 7 {
		t.Errorf("expected init delta 7, got %v", d)
	}
}

func TestParseMovementKind(t *testing.T) {
	for _, valid := range []string{"init", "entry", "exit"} {
		if _, err := ParseMovementKind(valid); err != nil {
			t.Errorf("expected %q to parse, got error: %v", valid, err)
		}
	}
	if _, err := ParseMovementKind("transfer"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
