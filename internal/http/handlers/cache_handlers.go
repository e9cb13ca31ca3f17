package handlers

import (
	"log"
	"net/http"
)

// ServiceStatsHandler godoc
// @Summary Cache and connection pool statistics
// @Tags ops
// @Produce json
// @Success 200 {object} ServiceStats
// @Router /stats [get]
func ServiceStatsHandler(w http.ResponseWriter, r *http.Request) {
	var stats ServiceStats

	if cache != nil {
		stats.Redis.Connected = cache.Rdb().Ping(cache.Ctx()).Err() == nil
		if n, err := cache.CachedKeyCount(); err == nil {
			stats.Redis.TotalKeys = n
		}
	}
	if database != nil {
		dbStats := database.Stats()
		stats.Database.OpenConnections = dbStats.OpenConnections
		stats.Database.IdleConnections = dbStats.Idle
	}

	if err := writeJSON(w, http.StatusOK, stats); err != nil {
		log.Printf("failed to write stats response: %v", err)
	}
}

// ClearCacheHandler godoc
// @Summary Drop all cached product data
// @Tags ops
// @Produce json
// @Success 200 {object} CacheClearResult
// @Failure 500 {object} ErrorResponse
// @Router /cache [delete]
func ClearCacheHandler(w http.ResponseWriter, r *http.Request) {
	result := CacheClearResult{Message: "cache cleared"}

	if cache != nil {
		deleted, err := cache.ClearProductCache()
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "could not clear cache")
			return
		}
		result.KeysDeleted = deleted
	}

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		log.Printf("failed to write cache response: %v", err)
	}
}
