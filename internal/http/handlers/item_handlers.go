package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/castello-soft/stock-ledger/internal/ledger"
	repo "github.com/castello-soft/stock-ledger/internal/repo"
)

// CreateItemHandler godoc
// @Summary Register a new inventory item
// @Description Creates the item and records its init movement in one transaction
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body ItemRequest true "Item to register"
// @Success 201 {object} ItemResponse
// @Failure 400 {array} ItemValidationError
// @Router /items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateItem(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	item, movement, err := ledgerSvc.CreateItem(r.Context(), ledger.ItemInput{
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("could not create item")
		http.Error(w, "could not create item", http.StatusInternalServerError)
		return
	}

	log.Info().Int("item_id", item.ID).Int("movement_id", movement.ID).
		Msg("item registered with init movement")
	writeJSON(w, http.StatusCreated, itemResponse(item))
}

// GetItemsHandler godoc
// @Summary List all items
// @Tags items
// @Produce json
// @Success 200 {array} ItemResponse
// @Failure 500 {string} string "Internal error"
// @Router /items [get]
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := ledgerSvc.Items(r.Context())
	if err != nil {
		http.Error(w, "could not fetch items", http.StatusInternalServerError)
		return
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = itemResponse(item)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetItemByIDHandler godoc
// @Summary Get item by ID
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /items/{id} [get]
func GetItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := ledgerSvc.Item(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse(item))
}

// SearchItemsHandler godoc
// @Summary Search items by name or category
// @Tags items
// @Produce json
// @Param term query string true "Case-insensitive substring"
// @Success 200 {array} ItemResponse
// @Failure 400 {string} string "Missing term"
// @Failure 500 {string} string "Internal error"
// @Router /items/search [get]
func SearchItemsHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	items, err := ledgerSvc.SearchItems(r.Context(), term)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, "could not search items", http.StatusInternalServerError)
		return
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = itemResponse(item)
	}
	writeJSON(w, http.StatusOK, response)
}

// DeleteItemHandler godoc
// @Summary Delete an item and all of its movements
// @Tags items
// @Param id path int true "Item ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 403 {string} string "Admin role required"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /items/{id} [delete]
// @Security BearerAuth
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	role, err := GetRoleFromContext(r)
	if err != nil || role != "admin" {
		http.Error(w, "admin role required", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	if err := ledgerSvc.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("item_id", id).Msg("could not delete item")
		http.Error(w, "could not delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
