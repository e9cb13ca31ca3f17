package http

import (
	"net/http"

	"github.com/avelez-dev/stock-locator/internal/http/handlers"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	r.Get("/health", handlers.HealthCheckHandler)

	r.Post("/product", handlers.CreateOrUpdateProductHandler)
	r.Get("/product/{barcode}", handlers.GetProductByBarcodeHandler)
	r.Post("/product/{barcode}/out", handlers.StockOutHandler)

	r.Get("/products", handlers.ListProductsHandler)
	r.Post("/products/import", handlers.ImportProductsHandler)

	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Get("/admin/products", handlers.AdminProductsHandler)

	r.Get("/stats", handlers.ServiceStatsHandler)
	r.Delete("/cache", handlers.ClearCacheHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
