package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/castello-soft/stock-ledger/internal/http"
	handler "github.com/castello-soft/stock-ledger/internal/http/handlers"
	"github.com/castello-soft/stock-ledger/internal/models"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

func TestInventorySeriesHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := createTestItem(t, r, "Steel bolt", 10, 2.0)
	registerMovement(r, handler.MovementRequest{ItemID: item.Id, MovementType: "entry", Quantity: 50})
	registerMovement(r, handler.MovementRequest{ItemID: item.Id, MovementType: "exit", Quantity: 5})

	var points []models.InventoryPoint
	w, err := getJSON(r, "/dashboard/total", &points)
	if err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if len(points) != 3 {
		t.Fatalf("expected one point per movement, got %d", len(points))
	}
	want := []float64{20.0, 120.0, 110.0}
	for i, p := range points {
		if p.TotalValue != want[i] {
			t.Errorf("point %d: expected total value %v, got %v", i, want[i], p.TotalValue)
		}
	}
}

func TestInventorySeriesHandler_EmptyLedger(t *testing.T) {
	t.Cleanup(clearAllItems)
	clearAllItems()
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/total", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	// An empty ledger is an empty array, never null.
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected body [], got %q", body)
	}
}

func TestItemSeriesHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := createTestItem(t, r, "Copper wire", 40, 1.0)
	other := createTestItem(t, r, "PVC pipe", 7, 3.0)
	registerMovement(r, handler.MovementRequest{ItemID: item.Id, MovementType: "exit", Quantity: 15})
	registerMovement(r, handler.MovementRequest{ItemID: other.Id, MovementType: "entry", Quantity: 1})

	var points []models.QuantityPoint
	w, err := getJSON(r, fmt.Sprintf("/dashboard/items/%d", item.Id), &points)
	if err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points for the item, got %d", len(points))
	}
	if points[0].Quantity != 40 || points[1].Quantity != 25 {
		t.Errorf("expected quantities [40 25], got [%v %v]", points[0].Quantity, points[1].Quantity)
	}

	if nw, _ := getJSON(r, "/dashboard/items/9999", nil); nw.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", nw.Code)
	}
}

func TestGetDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	busy := createTestItem(t, r, "Steel bolt", 100, 2.0)
	createTestItem(t, r, "Washer", 3, 0.5)
	registerMovement(r, handler.MovementRequest{ItemID: busy.Id, MovementType: "exit", Quantity: 10})
	registerMovement(r, handler.MovementRequest{ItemID: busy.Id, MovementType: "entry", Quantity: 5})

	var m repo.Metrics
	w, err := getJSON(r, "/dashboard/metrics", &m)
	if err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if m.TotalItems != 2 {
		t.Errorf("expected 2 items, got %d", m.TotalItems)
	}
	if m.TotalMovements != 4 {
		t.Errorf("expected 4 movements, got %d", m.TotalMovements)
	}
	if m.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock item, got %d", m.LowStockCount)
	}
	if m.TotalValue != 191.5 {
		t.Errorf("expected total value 191.5, got %v", m.TotalValue)
	}
	if m.MostMovedItem.Name != "Steel bolt" || m.MostMovedItem.MovementCount != 3 {
		t.Errorf("unexpected most moved item: %+v", m.MostMovedItem)
	}
}

func TestHealthHandler(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}
