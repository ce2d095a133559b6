package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/castello-soft/stock-ledger/internal/models"
)

type PostgresMovementRepository struct {
	db DBTX
}

func NewPostgresMovementRepository(db DBTX) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

// Append inserts a new ledger row. Rows are immutable once written.
func (r *PostgresMovementRepository) Append(ctx context.Context, m models.Movement) (models.Movement, error) {
	query := `INSERT INTO movements (item_id, movement_type, quantity, unit_price, timestamp, quantity_after, total_value_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		m.ItemID, string(m.Kind), m.Quantity, m.UnitPrice, m.Timestamp, m.QuantityAfter, m.TotalValueAfter).Scan(&m.ID)
	if err != nil {
		return models.Movement{}, fmt.Errorf("failed to insert movement: %w", err)
	}
	return m, nil
}

func (r *PostgresMovementRepository) GetByID(ctx context.Context, id int) (models.Movement, error) {
	query := `SELECT id, item_id, movement_type, quantity, unit_price, timestamp, quantity_after, total_value_after
		FROM movements WHERE id = $1`
	var m models.Movement
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.UnitPrice, &m.Timestamp, &m.QuantityAfter, &m.TotalValueAfter)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movement{}, ErrMovementNotFound
	}
	return m, err
}

// List returns movements newest first; second-precision timestamp ties are
// broken by id so insertion order is preserved.
func (r *PostgresMovementRepository) List(ctx context.Context, mf MovementFilter) ([]models.Movement, error) {
	query := `SELECT id, item_id, movement_type, quantity, unit_price, timestamp, quantity_after, total_value_after
		FROM movements`
	args := []any{}
	argIdx := 1

	if mf.ItemID != nil {
		query += fmt.Sprintf(" WHERE item_id = $%d", argIdx)
		args = append(args, *mf.ItemID)
		argIdx++
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if mf.Limit != nil && *mf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *mf.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.UnitPrice, &m.Timestamp, &m.QuantityAfter, &m.TotalValueAfter); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *PostgresMovementRepository) InventorySeries(ctx context.Context) ([]models.InventoryPoint, error) {
	query := `SELECT timestamp, total_value_after FROM movements ORDER BY timestamp, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.InventoryPoint
	for rows.Next() {
		var p models.InventoryPoint
		if err := rows.Scan(&p.Timestamp, &p.TotalValue); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *PostgresMovementRepository) ItemSeries(ctx context.Context, itemID int) ([]models.QuantityPoint, error) {
	query := `SELECT timestamp, quantity_after FROM movements WHERE item_id = $1 ORDER BY timestamp, id`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.QuantityPoint
	for rows.Next() {
		var p models.QuantityPoint
		if err := rows.Scan(&p.Timestamp, &p.Quantity); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *PostgresMovementRepository) DeleteByItemID(ctx context.Context, itemID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM movements WHERE item_id = $1`, itemID)
	return err
}

func (r *PostgresMovementRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movements`).Scan(&total)
	return total, err
}
