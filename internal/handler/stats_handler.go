package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// Version is reported by the health endpoint.
var Version = "dev"

// StatsHandler serves the dashboard counters and the health check.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Stats GET /stats
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// Health GET /
func (h *StatsHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, dto.HealthResponse{
		Service: "GWP Backend",
		Version: Version,
		Status:  "running",
	})
}
