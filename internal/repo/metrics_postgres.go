package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/castello-soft/stock-ledger/internal/models"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

// GetDashboardMetrics implements MetricsRepository.
func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{}

	query := `SELECT COUNT(*), COALESCE(SUM(quantity * unit_price), 0),
		COUNT(*) FILTER (WHERE quantity < $1) FROM items`
	if err := r.db.QueryRowContext(ctx, query, models.LowStockThreshold).
		Scan(&m.TotalItems, &m.TotalValue, &m.LowStockCount); err != nil {
		return m, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movements`).Scan(&m.TotalMovements); err != nil {
		return m, err
	}

	mostMoved := `SELECT i.name, COUNT(m.id) AS movement_count
		FROM movements m JOIN items i ON i.id = m.item_id
		GROUP BY i.name ORDER BY movement_count DESC, i.name LIMIT 1`
	err := r.db.QueryRowContext(ctx, mostMoved).Scan(&m.MostMovedItem.Name, &m.MostMovedItem.MovementCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return m, err
	}
	return m, nil
}
