package controllers

import (
	"net/http"

	"pressroom/app/services"

	"github.com/rs/zerolog"
)

// StatsController serves the dashboard aggregates.
type StatsController struct {
	stats  *services.StatsService
	logger zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(stats *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{stats: stats, logger: logger}
}

// Dashboard handles GET /api/dashboard.
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Collect()
	if err != nil {
		status, msg := translate(c.logger, err, "Stats not found", "Failed to collect stats")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
