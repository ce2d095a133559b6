package repo

import "context"

type MostMovedItem struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

// Metrics is the headline dashboard summary, computed from current item state
// plus ledger volume. TotalValue matches the aggregate snapshotted on the most
// recent movement.
type Metrics struct {
	TotalItems     int           `json:"total_items"`
	TotalMovements int           `json:"total_movements"`
	LowStockCount  int           `json:"low_stock_count"`
	TotalValue     float64       `json:"total_value"`
	MostMovedItem  MostMovedItem `json:"most_moved_item"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}
