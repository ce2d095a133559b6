package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/castello-soft/stock-ledger/internal/models"
	repo "github.com/castello-soft/stock-ledger/internal/repo"
)

// InventorySeriesHandler godoc
// @Summary Whole-inventory value over time
// @Description One point per movement, oldest first
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.InventoryPoint
// @Failure 500 {string} string "Internal error"
// @Router /dashboard/total [get]
func InventorySeriesHandler(w http.ResponseWriter, r *http.Request) {
	points, err := ledgerSvc.InventorySeries(r.Context())
	if err != nil {
		http.Error(w, "could not fetch inventory series", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []models.InventoryPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// ItemSeriesHandler godoc
// @Summary One item's stock level over time
// @Tags dashboard
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {array} models.QuantityPoint
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /dashboard/items/{id} [get]
func ItemSeriesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	points, err := ledgerSvc.ItemSeries(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item series", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []models.QuantityPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// GetDashboardMetricsHandler godoc
// @Summary Headline inventory metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /dashboard/metrics [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.GetDashboardMetrics(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HealthHandler godoc
// @Summary Service liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
