package repo

import "context"

// InMemoryTxRunner gives the in-memory store the same all-or-nothing semantics
// as a database transaction: state is snapshotted before fn runs and restored
// if fn fails. Single-writer only, which is all the test suites need.
type InMemoryTxRunner struct {
	items     *InMemoryItemRepository
	movements *InMemoryMovementRepository
}

func NewInMemoryTxRunner(items *InMemoryItemRepository, movements *InMemoryMovementRepository) *InMemoryTxRunner {
	return &InMemoryTxRunner{items: items, movements: movements}
}

func (r *InMemoryTxRunner) Run(ctx context.Context, fn func(items ItemRepository, movements MovementRepository) error) error {
	itemsBefore := r.items.snapshot()
	movementsBefore, nextID := r.movements.snapshot()

	if err := fn(r.items, r.movements); err != nil {
		r.items.restore(itemsBefore)
		r.movements.restore(movementsBefore, nextID)
		return err
	}
	return nil
}
