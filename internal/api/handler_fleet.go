package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"amr-fleet-monitor/internal/model"
	"amr-fleet-monitor/internal/overlay"
)

// Root handles GET / as a liveness check.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AMR fleet monitor API is running"})
}

// GetRobots handles GET /api/robots.
func (h *Handler) GetRobots(c *gin.Context) {
	robots, err := h.store.ListRobots(c.Request.Context())
	if err != nil {
		h.storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": robots})
}

// GetMissions handles GET /api/missions.
func (h *Handler) GetMissions(c *gin.Context) {
	missions, err := h.store.ListMissions(c.Request.Context())
	if err != nil {
		h.storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": missions})
}

// StatsResponse is the overlay input: the aggregate counts plus the derived rates.
type StatsResponse struct {
	model.FleetStats
	overlay.Rates
}

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.FleetStats(c.Request.Context())
	if err != nil {
		h.storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": StatsResponse{
		FleetStats: stats,
		Rates:      overlay.ComputeRates(stats),
	}})
}
