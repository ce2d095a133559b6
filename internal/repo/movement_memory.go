package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// InMemoryMovementRepository is an in-memory implementation of MovementRepository.
type InMemoryMovementRepository struct {
	mu        sync.RWMutex
	movements []models.Movement
	nextID    int
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		movements: []models.Movement{},
		nextID:    1,
	}
}

func (r *InMemoryMovementRepository) Append(_ context.Context, m models.Movement) (models.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.movements = append(r.movements, m)
	return m, nil
}

func (r *InMemoryMovementRepository) GetByID(_ context.Context, id int) (models.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Movement{}, ErrMovementNotFound
}

func (r *InMemoryMovementRepository) List(_ context.Context, mf MovementFilter) ([]models.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var movements []models.Movement
	for _, m := range r.movements {
		if mf.ItemID != nil && m.ItemID != *mf.ItemID {
			continue
		}
		movements = append(movements, m)
	}

	// Newest first; the text timestamp sorts chronologically, ids break
	// second-precision ties.
	sort.Slice(movements, func(i, j int) bool {
		if movements[i].Timestamp != movements[j].Timestamp {
			return movements[i].Timestamp > movements[j].Timestamp
		}
		return movements[i].ID > movements[j].ID
	})

	if mf.Limit != nil && *mf.Limit > 0 && len(movements) > *mf.Limit {
		movements = movements[:*mf.Limit]
	}
	return movements, nil
}

func (r *InMemoryMovementRepository) InventorySeries(_ context.Context) ([]models.InventoryPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := r.chronological(nil)
	var points []models.InventoryPoint
	for _, m := range ordered {
		points = append(points, models.InventoryPoint{Timestamp: m.Timestamp, TotalValue: m.TotalValueAfter})
	}
	return points, nil
}

func (r *InMemoryMovementRepository) ItemSeries(_ context.Context, itemID int) ([]models.QuantityPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := r.chronological(&itemID)
	var points []models.QuantityPoint
	for _, m := range ordered {
		points = append(points, models.QuantityPoint{Timestamp: m.Timestamp, Quantity: m.QuantityAfter})
	}
	return points, nil
}

func (r *InMemoryMovementRepository) DeleteByItemID(_ context.Context, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.ItemID != itemID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

func (r *InMemoryMovementRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.movements), nil
}

// chronological returns movements oldest first, optionally filtered to one item.
// Callers must hold at least the read lock.
func (r *InMemoryMovementRepository) chronological(itemID *int) []models.Movement {
	var movements []models.Movement
	for _, m := range r.movements {
		if itemID != nil && m.ItemID != *itemID {
			continue
		}
		movements = append(movements, m)
	}
	sort.Slice(movements, func(i, j int) bool {
		if movements[i].Timestamp != movements[j].Timestamp {
			return movements[i].Timestamp < movements[j].Timestamp
		}
		return movements[i].ID < movements[j].ID
	})
	return movements
}

// Clear removes all movements. Test helper.
func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = []models.Movement{}
	r.nextID = 1
}

func (r *InMemoryMovementRepository) snapshot() ([]models.Movement, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movements := make([]models.Movement, len(r.movements))
	copy(movements, r.movements)
	return movements, r.nextID
}

func (r *InMemoryMovementRepository) restore(movements []models.Movement, nextID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = movements
	r.nextID = nextID
}
