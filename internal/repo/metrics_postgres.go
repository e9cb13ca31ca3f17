package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM products`).Scan(&m.TotalUnits)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE quantity = 0`).Scan(&m.OutOfStockCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT location, COUNT(*) as cnt
		FROM products
		WHERE location <> ''
		GROUP BY location
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.BusiestLocation.Location, &m.BusiestLocation.ProductCount)

	return m, nil
}
