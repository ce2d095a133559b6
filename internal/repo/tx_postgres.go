package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresTxRunner opens one serializable transaction per call so the
// read-validate-write-append sequence cannot lose updates under concurrent
// movement registrations against the same item.
type PostgresTxRunner struct {
	db *sql.DB
}

func NewPostgresTxRunner(db *sql.DB) *PostgresTxRunner {
	return &PostgresTxRunner{db: db}
}

func (r *PostgresTxRunner) Run(ctx context.Context, fn func(items ItemRepository, movements MovementRepository) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewPostgresItemRepository(tx), NewPostgresMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
