package repo

import (
	"context"
	"errors"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// ErrItemNotFound is returned when an item is not found in the repository.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the interface for item current-state operations.
// UpdateState overwrites quantity/price without validation; the ledger service
// is responsible for computing the correct values beforehand.
type ItemRepository interface {
	Create(ctx context.Context, item models.Item) (models.Item, error)
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id int) (models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	UpdateState(ctx context.Context, id int, quantity, unitPrice float64) error
	Delete(ctx context.Context, id int) error
	TotalValue(ctx context.Context) (float64, error)
}
