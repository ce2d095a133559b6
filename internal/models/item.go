package models

// LowStockThreshold is the quantity below which an item is flagged for restocking.
const LowStockThreshold = 5.0

// Item represents a tracked stock-keeping unit. Quantity and UnitPrice are the
// current ("head") state; every change to them is recorded in the movement ledger.
type Item struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// TotalValue is the current worth of the stock on hand. Derived, never stored.
func (i Item) TotalValue() float64 {
	return i.Quantity * i.UnitPrice
}

// LowStock reports whether the item is below the restocking threshold.
func (i Item) LowStock() bool {
	return i.Quantity < LowStockThreshold
}
