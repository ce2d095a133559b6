package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/castello-soft/stock-ledger/internal/ledger"
	"github.com/castello-soft/stock-ledger/internal/models"
	repo "github.com/castello-soft/stock-ledger/internal/repo"
)

// RegisterMovementHandler godoc
// @Summary Register a stock entry or exit
// @Description Applies the movement to the item and appends the ledger row atomically
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movement body MovementRequest true "Movement to register"
// @Success 201 {object} MovementResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Item not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /movements [post]
func RegisterMovementHandler(w http.ResponseWriter, r *http.Request) {
	var req MovementRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	movement, err := ledgerSvc.RegisterMovement(r.Context(), ledger.MovementInput{
		ItemID:    req.ItemID,
		Kind:      models.MovementKind(req.MovementType),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		var verr *ledger.ValidationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Message, http.StatusBadRequest)
		case errors.Is(err, repo.ErrItemNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrInsufficientStock):
			http.Error(w, "quantity exceeds current stock", http.StatusConflict)
		default:
			log.Error().Err(err).Int("item_id", req.ItemID).Msg("could not register movement")
			http.Error(w, "could not register movement", http.StatusInternalServerError)
		}
		return
	}

	if movement.QuantityAfter < models.LowStockThreshold {
		log.Warn().Int("item_id", movement.ItemID).Float64("quantity", movement.QuantityAfter).
			Msg("item is below the low-stock threshold")
	}

	writeJSON(w, http.StatusCreated, movementResponse(movement))
}

// GetMovementsHandler godoc
// @Summary List movements, newest first
// @Tags movements
// @Produce json
// @Param item_id query int false "Filter to one item"
// @Param limit query int false "Cap to the N most recent"
// @Success 200 {array} MovementResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	mf, ok := movementFilterFromQuery(w, r)
	if !ok {
		return
	}

	movements, err := ledgerSvc.Movements(r.Context(), mf)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	response := make([]MovementResponse, len(movements))
	for i, m := range movements {
		response[i] = movementResponse(m)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetMovementByIDHandler godoc
// @Summary Get one movement by ID
// @Tags movements
// @Produce json
// @Param id path int true "Movement ID"
// @Success 200 {object} MovementResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /movements/{id} [get]
func GetMovementByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid movement ID", http.StatusBadRequest)
		return
	}

	movement, err := ledgerSvc.Movement(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrMovementNotFound) {
			http.Error(w, "movement not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch movement", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, movementResponse(movement))
}

// ExportMovementsHandler godoc
// @Summary Export the movement ledger
// @Tags movements
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param item_id query int false "Filter to one item"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /movements/export [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	mf, ok := movementFilterFromQuery(w, r)
	if !ok {
		return
	}

	movements, err := ledgerSvc.Movements(r.Context(), mf)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		response := make([]MovementResponse, len(movements))
		for i, m := range movements {
			response[i] = movementResponse(m)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		writeJSON(w, http.StatusOK, response)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "item_id", "movement_type", "quantity", "unit_price", "timestamp", "quantity_after", "total_value_after"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ItemID),
				string(m.Kind),
				strconv.FormatFloat(m.Quantity, 'f', -1, 64),
				strconv.FormatFloat(m.UnitPrice, 'f', -1, 64),
				m.Timestamp,
				strconv.FormatFloat(m.QuantityAfter, 'f', -1, 64),
				strconv.FormatFloat(m.TotalValueAfter, 'f', -1, 64),
			})
		}
		csvWriter.Flush()
	}
}

func movementFilterFromQuery(w http.ResponseWriter, r *http.Request) (repo.MovementFilter, bool) {
	var mf repo.MovementFilter

	if itemIDStr := r.URL.Query().Get("item_id"); itemIDStr != "" {
		itemID, err := strconv.Atoi(itemIDStr)
		if err != nil {
			http.Error(w, "invalid item_id format", http.StatusBadRequest)
			return mf, false
		}
		mf.ItemID = &itemID
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return mf, false
		}
		if limit <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return mf, false
		}
		mf.Limit = &limit
	}
	return mf, true
}
