package models

import "fmt"

// TimestampLayout is the storage format for movement timestamps: UTC wall-clock
// with second precision, sortable as text.
const TimestampLayout = "2006-01-02 15:04:05"

type MovementKind string

const (
	KindInit  MovementKind = "init"
	KindEntry MovementKind = "entry"
	KindExit  MovementKind = "exit"
)

// ParseMovementKind validates a wire value against the known movement kinds.
func ParseMovementKind(s string) (MovementKind, error) {
	switch k := MovementKind(s); k {
	case KindInit, KindEntry, KindExit:
		return k, nil
	}
	return "", fmt.Errorf("unknown movement kind %q", s)
}

// Movement is one immutable ledger entry. QuantityAfter snapshots the item's
// quantity and TotalValueAfter the whole-inventory value, both taken immediately
// after the movement was applied, inside the same transaction.
type Movement struct {
	ID              int          `json:"id"`
	ItemID          int          `json:"item_id"`
	Kind            MovementKind `json:"movement_type"`
	Quantity        float64      `json:"quantity"`
	UnitPrice       float64      `json:"unit_price"`
	Timestamp       string       `json:"timestamp"`
	QuantityAfter   float64      `json:"quantity_after"`
	TotalValueAfter float64      `json:"total_value_after"`
}

// Delta is the signed quantity change this movement applied to its item.
func (m Movement) Delta() float64 {
	if m.Kind == KindExit {
		return -m.Quantity
	}
	return m.Quantity
}

// InventoryPoint is one sample of the whole-inventory value time series.
type InventoryPoint struct {
	Timestamp  string  `json:"timestamp"`
	TotalValue float64 `json:"total_value"`
}

// QuantityPoint is one sample of a single item's stock-level time series.
type QuantityPoint struct {
	Timestamp string  `json:"timestamp"`
	Quantity  float64 `json:"quantity"`
}
