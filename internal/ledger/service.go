package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/castello-soft/stock-ledger/internal/models"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

// Service owns the movement-ledger consistency model. Every mutation of an
// item's quantity or price runs as: compute new state, write it to the item
// store, snapshot the whole-inventory value, append a movement carrying both
// snapshots — all inside one transaction supplied by the TxRunner.
type Service struct {
	items     repo.ItemRepository
	movements repo.MovementRepository
	runner    repo.TxRunner

	now func() time.Time
}

func NewService(items repo.ItemRepository, movements repo.MovementRepository, runner repo.TxRunner) *Service {
	return &Service{
		items:     items,
		movements: movements,
		runner:    runner,
		now:       time.Now,
	}
}

type ItemInput struct {
	Name      string
	Category  string
	Unit      string
	Quantity  float64
	UnitPrice float64
}

type MovementInput struct {
	ItemID   int
	Kind     models.MovementKind
	Quantity float64
	// UnitPrice is optional: nil keeps the item's current price ("sticky").
	UnitPrice *float64
}

func (in ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return validationf("category is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return validationf("unit is required")
	}
	if in.Quantity < 0 {
		return validationf("quantity cannot be negative")
	}
	if in.UnitPrice < 0 {
		return validationf("unit_price cannot be negative")
	}
	return nil
}

// CreateItem registers a new item and emits its init movement in one
// transaction. The init movement's total_value_after already includes the
// newly created stock.
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (models.Item, models.Movement, error) {
	if err := in.validate(); err != nil {
		return models.Item{}, models.Movement{}, err
	}

	var (
		created  models.Item
		movement models.Movement
	)
	err := s.runner.Run(ctx, func(items repo.ItemRepository, movements repo.MovementRepository) error {
		var err error
		created, err = items.Create(ctx, models.Item{
			Name:      in.Name,
			Category:  in.Category,
			Unit:      in.Unit,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		})
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}

		totalAfter, err := items.TotalValue(ctx)
		if err != nil {
			return fmt.Errorf("compute inventory value: %w", err)
		}

		movement, err = movements.Append(ctx, models.Movement{
			ItemID:          created.ID,
			Kind:            models.KindInit,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			Timestamp:       s.timestamp(),
			QuantityAfter:   in.Quantity,
			TotalValueAfter: totalAfter,
		})
		return err
	})
	if err != nil {
		return models.Item{}, models.Movement{}, err
	}
	return created, movement, nil
}

// RegisterMovement applies an entry or exit to an item and appends the ledger
// row recording the state after it. Init movements are only produced by
// CreateItem and are rejected here.
func (s *Service) RegisterMovement(ctx context.Context, in MovementInput) (models.Movement, error) {
	if in.Kind != models.KindEntry && in.Kind != models.KindExit {
		return models.Movement{}, validationf("movement_type must be entry or exit")
	}
	if in.Quantity <= 0 {
		return models.Movement{}, validationf("quantity must be greater than zero")
	}
	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		return models.Movement{}, validationf("unit_price cannot be negative")
	}

	var movement models.Movement
	err := s.runner.Run(ctx, func(items repo.ItemRepository, movements repo.MovementRepository) error {
		item, err := items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}

		if in.Kind == models.KindExit && in.Quantity > item.Quantity {
			return ErrInsufficientStock
		}

		price := item.UnitPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}

		newQuantity := item.Quantity + in.Quantity
		if in.Kind == models.KindExit {
			newQuantity = item.Quantity - in.Quantity
		}

		if err := items.UpdateState(ctx, item.ID, newQuantity, price); err != nil {
			if errors.Is(err, repo.ErrItemNotFound) {
				// The item was read moments ago in this same transaction.
				return fmt.Errorf("item %d vanished mid-transaction: %w", item.ID, ErrInconsistentState)
			}
			return fmt.Errorf("update item state: %w", err)
		}

		totalAfter, err := items.TotalValue(ctx)
		if err != nil {
			return fmt.Errorf("compute inventory value: %w", err)
		}

		movement, err = movements.Append(ctx, models.Movement{
			ItemID:          item.ID,
			Kind:            in.Kind,
			Quantity:        in.Quantity,
			UnitPrice:       price,
			Timestamp:       s.timestamp(),
			QuantityAfter:   newQuantity,
			TotalValueAfter: totalAfter,
		})
		return err
	})
	if err != nil {
		return models.Movement{}, err
	}
	return movement, nil
}

// DeleteItem removes an item and all of its movements atomically. Movements do
// not outlive their item.
func (s *Service) DeleteItem(ctx context.Context, id int) error {
	return s.runner.Run(ctx, func(items repo.ItemRepository, movements repo.MovementRepository) error {
		if _, err := items.GetByID(ctx, id); err != nil {
			return err
		}
		if err := movements.DeleteByItemID(ctx, id); err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}
		return items.Delete(ctx, id)
	})
}

func (s *Service) Item(ctx context.Context, id int) (models.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *Service) Items(ctx context.Context) ([]models.Item, error) {
	return s.items.GetAll(ctx)
}

func (s *Service) SearchItems(ctx context.Context, term string) ([]models.Item, error) {
	if strings.TrimSpace(term) == "" {
		return nil, validationf("search term is required")
	}
	return s.items.Search(ctx, term)
}

func (s *Service) Movement(ctx context.Context, id int) (models.Movement, error) {
	return s.movements.GetByID(ctx, id)
}

func (s *Service) Movements(ctx context.Context, mf repo.MovementFilter) ([]models.Movement, error) {
	if mf.Limit != nil && *mf.Limit <= 0 {
		return nil, validationf("limit must be greater than zero")
	}
	return s.movements.List(ctx, mf)
}

// InventorySeries returns the whole-inventory value over time, oldest first.
func (s *Service) InventorySeries(ctx context.Context) ([]models.InventoryPoint, error) {
	return s.movements.InventorySeries(ctx)
}

// ItemSeries returns one item's stock level over time, oldest first.
func (s *Service) ItemSeries(ctx context.Context, itemID int) ([]models.QuantityPoint, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.movements.ItemSeries(ctx, itemID)
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(models.TimestampLayout)
}
