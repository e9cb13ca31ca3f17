package handlers

import (
	"database/sql"

	"github.com/avelez-dev/stock-locator/internal/redissvc"
	repo "github.com/avelez-dev/stock-locator/internal/repo"
)

var (
	productRepo repo.ProductRepository
	metricsRepo repo.MetricsRepository

	// cache is nil when the service runs without redis; every handler that
	// touches it degrades to hitting the store directly.
	cache *redissvc.RedisService

	database *sql.DB
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	cache = rs
}

func SetDB(db *sql.DB) {
	database = db
}
