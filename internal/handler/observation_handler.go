package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// ObservationHandler serves the per-item log.
type ObservationHandler struct {
	observationService *service.ObservationService
}

// NewObservationHandler creates an ObservationHandler.
func NewObservationHandler(observationService *service.ObservationService) *ObservationHandler {
	return &ObservationHandler{observationService: observationService}
}

// ListByPlan GET /plan-maestro/:id/observaciones
func (h *ObservationHandler) ListByPlan(c *gin.Context) {
	planID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.observationService.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// List GET /observaciones
func (h *ObservationHandler) List(c *gin.Context) {
	rows, err := h.observationService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Create POST /plan-maestro/:id/observaciones
func (h *ObservationHandler) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	planID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Texto requerido")
		return
	}

	obs, err := h.observationService.Create(c.Request.Context(), userID, planID, req.Texto)
	if err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	utils.Created(c, obs.ID, "Observación creada")
}

// Update PUT /observaciones/:id
func (h *ObservationHandler) Update(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Texto requerido")
		return
	}

	if err := h.observationService.Update(c.Request.Context(), userID, id, req.Texto); err != nil {
		respondError(c, err, "Observación no encontrada")
		return
	}
	utils.SuccessWithMessage(c, "Observación actualizada", nil)
}

// Delete DELETE /observaciones/:id
func (h *ObservationHandler) Delete(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.observationService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "Observación no encontrada")
		return
	}
	utils.SuccessWithMessage(c, "Observación eliminada", nil)
}
