package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository,
// used by the handler test suites and the menu front-end demos.
type InMemoryItemRepository struct {
	mu     sync.RWMutex
	items  []models.Item
	nextID int
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  []models.Item{},
		nextID: 1,
	}
}

func (r *InMemoryItemRepository) Create(_ context.Context, item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryItemRepository) GetAll(_ context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, len(r.items))
	copy(items, r.items)
	return items, nil
}

func (r *InMemoryItemRepository) GetByID(_ context.Context, id int) (models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) Search(_ context.Context, term string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)
	var matches []models.Item
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Category), term) {
			matches = append(matches, item)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

func (r *InMemoryItemRepository) UpdateState(_ context.Context, id int, quantity, unitPrice float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items[i].Quantity = quantity
			r.items[i].UnitPrice = unitPrice
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryItemRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryItemRepository) TotalValue(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	for _, item := range r.items {
		total += item.Quantity * item.UnitPrice
	}
	return total, nil
}

// Clear removes all items. Test helper.
func (r *InMemoryItemRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []models.Item{}
	r.nextID = 1
}

func (r *InMemoryItemRepository) snapshot() []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.Item, len(r.items))
	copy(items, r.items)
	return items
}

func (r *InMemoryItemRepository) restore(items []models.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.nextID = 1
	for _, item := range items {
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
	}
}
