package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/castello-soft/stock-ledger/internal/http"
	handler "github.com/castello-soft/stock-ledger/internal/http/handlers"
)

func TestCreateItemHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "Steel bolt", Category: "Hardware", Unit: "un", Quantity: 100, UnitPrice: 2.5})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Steel bolt" {
		t.Errorf("expected name 'Steel bolt', got %v", resp.Name)
	}
	if resp.Quantity != 100 {
		t.Errorf("expected quantity 100, got %v", resp.Quantity)
	}
	if resp.TotalValue != 250.0 {
		t.Errorf("expected total value 250.0, got %v", resp.TotalValue)
	}
	if resp.LowStock {
		t.Errorf("expected item not to be flagged low stock")
	}
}

func TestCreateItemHandler_EmitsInitMovement(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "Copper wire", Category: "Raw material", Unit: "m", Quantity: 40, UnitPrice: 1.5})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var item handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	var movements []handler.MovementResponse
	if _, err := getJSON(r, fmt.Sprintf("/movements?item_id=%d", item.Id), &movements); err != nil {
		t.Fatal(err)
	}

	if len(movements) != 1 {
		t.Fatalf("expected a single init movement, got %d", len(movements))
	}
	m := movements[0]
	if m.MovementType != "init" {
		t.Errorf("expected movement_type 'init', got %q", m.MovementType)
	}
	if m.QuantityAfter != 40 {
		t.Errorf("expected quantity_after 40, got %v", m.QuantityAfter)
	}
	if m.TotalValueAfter != 60.0 {
		t.Errorf("expected total_value_after 60.0, got %v", m.TotalValueAfter)
	}
}

func TestCreateItemHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ItemRequest
		expectedErrors []string
	}{
		{
			name:           "Everything missing",
			payload:        handler.ItemRequest{},
			expectedErrors: []string{"Name", "Category", "Unit"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.ItemRequest{Name: "Bolt", Category: "Hardware", Unit: "un", Quantity: -1, UnitPrice: 2},
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Negative price",
			payload:        handler.ItemRequest{Name: "Bolt", Category: "Hardware", Unit: "un", Quantity: 1, UnitPrice: -0.5},
			expectedErrors: []string{"UnitPrice"},
		},
		{
			name:           "Blank name",
			payload:        handler.ItemRequest{Name: "   ", Category: "Hardware", Unit: "un", Quantity: 1, UnitPrice: 2},
			expectedErrors: []string{"Name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createItem(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ItemValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, e := range resp {
					if strings.EqualFold(e.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateItemHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	badJSON := `{Name: "Invalid" Quantity: 100 "}`
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}

	expectedBody := "invalid input\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestCreateItemHandler_RequiresToken(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	body, _ := json.Marshal(handler.ItemRequest{Name: "Bolt", Category: "Hardware", Unit: "un", Quantity: 1, UnitPrice: 2})
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 Unauthorized, got %d", w.Code)
	}
}

func TestGetItemsHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	if w := createItem(r, handler.ItemRequest{Name: "Phone", Category: "Finished goods", Unit: "un", Quantity: 1, UnitPrice: 999.99}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for item creation, got %d", w.Code)
	}
	if w := createItem(r, handler.ItemRequest{Name: "Tablet", Category: "Finished goods", Unit: "un", Quantity: 2, UnitPrice: 499.99}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for second item creation, got %d", w.Code)
	}

	var items []handler.ItemResponse
	w, err := getJSON(r, "/items", &items)
	if err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestGetItemByIDHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "Washer", Category: "Hardware", Unit: "un", Quantity: 3, UnitPrice: 0.2})
	var created handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	var fetched handler.ItemResponse
	gw, err := getJSON(r, fmt.Sprintf("/items/%d", created.Id), &fetched)
	if err != nil {
		t.Fatal(err)
	}
	if gw.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", gw.Code)
	}
	if fetched.Name != "Washer" {
		t.Errorf("expected name 'Washer', got %q", fetched.Name)
	}
	if !fetched.LowStock {
		t.Errorf("expected quantity 3 to be flagged low stock")
	}

	nw, _ := getJSON(r, "/items/9999", nil)
	if nw.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", nw.Code)
	}
}

func TestSearchItemsHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	createItem(r, handler.ItemRequest{Name: "Steel bolt", Category: "Hardware", Unit: "un", Quantity: 10, UnitPrice: 2})
	createItem(r, handler.ItemRequest{Name: "Anchor", Category: "hardware", Unit: "un", Quantity: 5, UnitPrice: 3})
	createItem(r, handler.ItemRequest{Name: "PVC pipe", Category: "Plumbing", Unit: "m", Quantity: 8, UnitPrice: 4})

	var matches []handler.ItemResponse
	w, err := getJSON(r, "/items/search?term=hard", &matches)
	if err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for 'hard', got %d", len(matches))
	}
	if matches[0].Name != "Anchor" || matches[1].Name != "Steel bolt" {
		t.Errorf("expected results sorted by name, got %q then %q", matches[0].Name, matches[1].Name)
	}

	mw, _ := getJSON(r, "/items/search", nil)
	if mw.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing term, got %d", mw.Code)
	}
}

func TestDeleteItemHandler_RequiresAdminRole(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "Filter", Category: "Consumable", Unit: "un", Quantity: 2, UnitPrice: 5})
	var created handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	// Self-registered accounts get the plain user role.
	rw := postCredentials(r, "/register", "operator2", "longenough")
	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for registration, got %d", rw.Code)
	}
	var reg handler.RegisterResult
	if err := json.NewDecoder(rw.Body).Decode(&reg); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/items/%d", created.Id), nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)

	if dw.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden for non-admin delete, got %d", dw.Code)
	}

	// Item survives the refused delete.
	if gw, _ := getJSON(r, fmt.Sprintf("/items/%d", created.Id), nil); gw.Code != http.StatusOK {
		t.Errorf("expected item to still exist, got %d", gw.Code)
	}
}

func TestDeleteItemHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "Cardboard box", Category: "Packaging", Unit: "caixa(s)", Quantity: 20, UnitPrice: 0.8})
	var created handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	registerMovement(r, handler.MovementRequest{ItemID: created.Id, MovementType: "exit", Quantity: 5})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/items/%d", created.Id), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)

	if dw.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", dw.Code)
	}

	gw, _ := getJSON(r, fmt.Sprintf("/items/%d", created.Id), nil)
	if gw.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", gw.Code)
	}

	// Its ledger rows go with it.
	var movements []handler.MovementResponse
	if _, err := getJSON(r, fmt.Sprintf("/movements?item_id=%d", created.Id), &movements); err != nil {
		t.Fatal(err)
	}
	if len(movements) != 0 {
		t.Errorf("expected no movements after cascade delete, got %d", len(movements))
	}

	rw := httptest.NewRequest(http.MethodDelete, "/items/9999", nil)
	rw.Header.Set("Authorization", "Bearer "+token)
	nw := httptest.NewRecorder()
	r.ServeHTTP(nw, rw)
	if nw.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", nw.Code)
	}
}
