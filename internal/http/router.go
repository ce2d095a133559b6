package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/castello-soft/stock-ledger/docs"
	"github.com/castello-soft/stock-ledger/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handlers.HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	r.Get("/items", handlers.GetItemsHandler)
	r.Get("/items/search", handlers.SearchItemsHandler)
	r.Get("/items/{id}", handlers.GetItemByIDHandler)
	r.Get("/movements", handlers.GetMovementsHandler)
	r.Get("/movements/export", handlers.ExportMovementsHandler)
	r.Get("/movements/{id}", handlers.GetMovementByIDHandler)
	r.Get("/dashboard/total", handlers.InventorySeriesHandler)
	r.Get("/dashboard/items/{id}", handlers.ItemSeriesHandler)
	r.Get("/dashboard/metrics", handlers.GetDashboardMetricsHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/items", handlers.CreateItemHandler)
		r.Delete("/items/{id}", handlers.DeleteItemHandler)
		r.Post("/movements", handlers.RegisterMovementHandler)
	})

	return r
}
