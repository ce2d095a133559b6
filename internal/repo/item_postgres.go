package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository code
// serves direct reads and transaction-bound writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresItemRepository struct {
	db DBTX
}

func NewPostgresItemRepository(db DBTX) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

func (r *PostgresItemRepository) Create(ctx context.Context, item models.Item) (models.Item, error) {
	query := `INSERT INTO items (name, category, unit, quantity, unit_price) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, item.Name, item.Category, item.Unit, item.Quantity, item.UnitPrice).Scan(&item.ID)
	return item, err
}

func (r *PostgresItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, name, category, unit, quantity, unit_price FROM items ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PostgresItemRepository) GetByID(ctx context.Context, id int) (models.Item, error) {
	query := `SELECT id, name, category, unit, quantity, unit_price FROM items WHERE id = $1`
	var item models.Item
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Name, &item.Category, &item.Unit, &item.Quantity, &item.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return item, err
}

func (r *PostgresItemRepository) Search(ctx context.Context, term string) ([]models.Item, error) {
	query := `SELECT id, name, category, unit, quantity, unit_price FROM items
		WHERE name ILIKE $1 OR category ILIKE $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PostgresItemRepository) UpdateState(ctx context.Context, id int, quantity, unitPrice float64) error {
	query := `UPDATE items SET quantity = $1, unit_price = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, quantity, unitPrice, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// TotalValue computes the whole-inventory value from current item state. Run
// inside the same transaction as the item write it must be consistent with.
func (r *PostgresItemRepository) TotalValue(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(quantity * unit_price), 0) FROM items`
	var total float64
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Unit, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
