package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/castello-soft/stock-ledger/internal/models"
)

func TestInMemoryTxRunnerRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	itemRepo := NewInMemoryItemRepository()
	movementRepo := NewInMemoryMovementRepository()
	runner := NewInMemoryTxRunner(itemRepo, movementRepo)

	seed, err := itemRepo.Create(ctx, models.Item{Name: "Bolt", Category: "Hardware", Unit: "un", Quantity: 10, UnitPrice: 2})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err = runner.Run(ctx, func(items ItemRepository, movements MovementRepository) error {
		if err := items.UpdateState(ctx, seed.ID, 99, 9.9); err != nil {
			return err
		}
		if _, err := movements.Append(ctx, models.Movement{ItemID: seed.ID, Kind: models.KindEntry, Quantity: 89}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error back, got %v", err)
	}

	item, err := itemRepo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 10 || item.UnitPrice != 2 {
		t.Errorf("expected item restored to (10, 2), got (%v, %v)", item.Quantity, item.UnitPrice)
	}
	if n, _ := movementRepo.Count(ctx); n != 0 {
		t.Errorf("expected no movements after rollback, got %d", n)
	}

	// IDs issued inside the failed run must be reusable.
	m, err := movementRepo.Append(ctx, models.Movement{ItemID: seed.ID, Kind: models.KindEntry, Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != 1 {
		t.Errorf("expected movement ID 1 after rollback, got %d", m.ID)
	}
}

func TestInMemoryTxRunnerCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	itemRepo := NewInMemoryItemRepository()
	movementRepo := NewInMemoryMovementRepository()
	runner := NewInMemoryTxRunner(itemRepo, movementRepo)

	err := runner.Run(ctx, func(items ItemRepository, movements MovementRepository) error {
		item, err := items.Create(ctx, models.Item{Name: "Washer", Category: "Hardware", Unit: "un", Quantity: 5, UnitPrice: 0.5})
		if err != nil {
			return err
		}
		_, err = movements.Append(ctx, models.Movement{ItemID: item.ID, Kind: models.KindInit, Quantity: 5})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	if items, _ := itemRepo.GetAll(ctx); len(items) != 1 {
		t.Errorf("expected 1 item after commit, got %d", len(items))
	}
	if n, _ := movementRepo.Count(ctx); n != 1 {
		t.Errorf("expected 1 movement after commit, got %d", n)
	}
}

func TestInMemoryMovementListOrdering(t *testing.T) {
	ctx := context.Background()
	movementRepo := NewInMemoryMovementRepository()

	rows := []models.Movement{
		{ItemID: 1, Kind: models.KindInit, Timestamp: "2025-03-01 12:00:00"},
		{ItemID: 1, Kind: models.KindEntry, Timestamp: "2025-03-01 12:00:05"},
		{ItemID: 2, Kind: models.KindInit, Timestamp: "2025-03-01 12:00:05"},
		{ItemID: 1, Kind: models.KindExit, Timestamp: "2025-03-01 11:59:00"},
	}
	for _, m := range rows {
		if _, err := movementRepo.Append(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	got, err := movementRepo.List(ctx, MovementFilter{})
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []int{3, 2, 1, 4} // newest first, ids break the shared-second tie
	for i, m := range got {
		if m.ID != wantIDs[i] {
			t.Fatalf("position %d: expected movement %d, got %d", i, wantIDs[i], m.ID)
		}
	}

	itemID := 1
	limit := 2
	filtered, err := movementRepo.List(ctx, MovementFilter{ItemID: &itemID, Limit: &limit})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 || filtered[0].ID != 2 || filtered[1].ID != 1 {
		t.Fatalf("unexpected filtered result: %+v", filtered)
	}

	series, err := movementRepo.ItemSeries(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 3 || series[0].Timestamp != "2025-03-01 11:59:00" {
		t.Fatalf("expected oldest-first series starting at 11:59:00, got %+v", series)
	}
}

func TestInMemoryMovementDeleteByItemID(t *testing.T) {
	ctx := context.Background()
	movementRepo := NewInMemoryMovementRepository()

	movementRepo.Append(ctx, models.Movement{ItemID: 1, Kind: models.KindInit})
	movementRepo.Append(ctx, models.Movement{ItemID: 2, Kind: models.KindInit})
	movementRepo.Append(ctx, models.Movement{ItemID: 1, Kind: models.KindExit})

	if err := movementRepo.DeleteByItemID(ctx, 1); err != nil {
		t.Fatal(err)
	}

	remaining, err := movementRepo.List(ctx, MovementFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].ItemID != 2 {
		t.Fatalf("expected only item 2's movement to remain, got %+v", remaining)
	}
}

func TestInMemoryItemSearch(t *testing.T) {
	ctx := context.Background()
	itemRepo := NewInMemoryItemRepository()

	itemRepo.Create(ctx, models.Item{Name: "Steel bolt", Category: "Hardware"})
	itemRepo.Create(ctx, models.Item{Name: "Anchor", Category: "hardware"})
	itemRepo.Create(ctx, models.Item{Name: "PVC pipe", Category: "Plumbing"})

	matches, err := itemRepo.Search(ctx, "HARD")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Name != "Anchor" || matches[1].Name != "Steel bolt" {
		t.Errorf("expected name-sorted results, got %q then %q", matches[0].Name, matches[1].Name)
	}

	none, err := itemRepo.Search(ctx, "zzz")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}
