package api

import (
	"net/http"

	"github.com/dasalon/blog-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	statsRepo *database.StatsRepo
}

func newDashboardHandler(statsRepo *database.StatsRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		statsRepo: statsRepo,
	}
}

// getStats returns the dashboard counters, recomputed on every call
// @Summary Dashboard stats
// @Description Returns total posts, active categories, users and summed views
// @Tags Dashboard
// @Produce json
// @Success 200 {object} database.DashboardStats "Dashboard counters"
// @Router /dashboard-stats [get]
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.statsRepo.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "dashboard stats", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}
