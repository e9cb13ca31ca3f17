package handlers

import (
	"log"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the admin view
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {object} ErrorResponse
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.GetDashboardMetrics()
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to fetch metrics")
		return
	}
	if err := writeJSON(w, http.StatusOK, m); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
