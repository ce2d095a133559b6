package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Connect(databaseURL string) (*sql.DB, error) {
	database, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// EnsureSchema creates the tables if they do not exist. Movement timestamps are
// stored as sortable text with second resolution.
func EnsureSchema(ctx context.Context, database *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			unit TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_price DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS movements (
			id SERIAL PRIMARY KEY,
			item_id INTEGER NOT NULL REFERENCES items(id),
			movement_type TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			timestamp TEXT NOT NULL,
			quantity_after DOUBLE PRECISION NOT NULL,
			total_value_after DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movements_item_id ON movements (item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_movements_timestamp ON movements (timestamp, id)`,
	}

	for _, stmt := range statements {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
