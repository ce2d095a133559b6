package repo

import (
	"context"
	"errors"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// ErrMovementNotFound is returned when a movement is not found in the repository.
var ErrMovementNotFound = errors.New("movement not found")

type MovementFilter struct {
	ItemID *int
	Limit  *int
}

// MovementRepository defines the interface for the append-only movement ledger.
// Movements are never updated; DeleteByItemID exists only to support the cascade
// when an item is removed.
type MovementRepository interface {
	Append(ctx context.Context, m models.Movement) (models.Movement, error)
	GetByID(ctx context.Context, id int) (models.Movement, error)
	List(ctx context.Context, mf MovementFilter) ([]models.Movement, error)
	InventorySeries(ctx context.Context) ([]models.InventoryPoint, error)
	ItemSeries(ctx context.Context, itemID int) ([]models.QuantityPoint, error)
	DeleteByItemID(ctx context.Context, itemID int) error
	Count(ctx context.Context) (int, error)
}
