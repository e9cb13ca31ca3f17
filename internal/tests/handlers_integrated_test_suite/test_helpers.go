package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/avelez-dev/stock-locator/internal/db"
	api "github.com/avelez-dev/stock-locator/internal/http"
	handler "github.com/avelez-dev/stock-locator/internal/http/handlers"
	"github.com/avelez-dev/stock-locator/internal/repo"
)

const productsTable = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	barcode TEXT NOT NULL UNIQUE,
	location TEXT NOT NULL DEFAULT '',
	quantity INT NOT NULL DEFAULT 0,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// setupIntegrated wires the handlers against a real Postgres instance.
// The suite is skipped entirely when DATABASE_URL is not set.
func setupIntegrated(t *testing.T) http.Handler {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integrated suite")
	}

	database, err := db.Connect(dsn)
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := database.ExecContext(ctx, productsTable); err != nil {
		t.Fatalf("could not create products table: %v", err)
	}
	truncateProducts(t, database)
	t.Cleanup(func() { truncateProducts(t, database) })

	handler.SetProductRepo(repo.NewPostgresProductRepository(database))
	handler.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handler.SetDB(database)

	return api.NewRouter()
}

func truncateProducts(t *testing.T, database *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := database.ExecContext(ctx, `TRUNCATE products RESTART IDENTITY`); err != nil {
		t.Fatalf("could not truncate products: %v", err)
	}
}

func postProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/product", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int {
	return &v
}
