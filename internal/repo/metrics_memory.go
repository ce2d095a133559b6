package repo

import "context"

type InMemoryMetricsRepository struct {
	itemRepo     ItemRepository
	movementRepo MovementRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(itemRepo ItemRepository, movementRepo MovementRepository) {
	r.itemRepo = itemRepo
	r.movementRepo = movementRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (r *InMemoryMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{}

	items, err := r.itemRepo.GetAll(ctx)
	if err != nil {
		return m, err
	}
	m.TotalItems = len(items)

	for _, item := range items {
		m.TotalValue += item.TotalValue()
		if item.LowStock() {
			m.LowStockCount++
		}

		movements, err := r.movementRepo.List(ctx, MovementFilter{ItemID: &item.ID})
		if err != nil {
			return m, err
		}
		m.TotalMovements += len(movements)
		if len(movements) > m.MostMovedItem.MovementCount {
			m.MostMovedItem.Name = item.Name
			m.MostMovedItem.MovementCount = len(movements)
		}
	}
	return m, nil
}
