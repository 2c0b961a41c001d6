package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// MilestoneHandler serves /hitos.
type MilestoneHandler struct {
	milestoneService *service.MilestoneService
}

// NewMilestoneHandler creates a MilestoneHandler.
func NewMilestoneHandler(milestoneService *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// List GET /hitos
func (h *MilestoneHandler) List(c *gin.Context) {
	rows, err := h.milestoneService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// ListByPlan GET /plan-maestro/:id/hitos
func (h *MilestoneHandler) ListByPlan(c *gin.Context) {
	planID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.milestoneService.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Create POST /hitos
func (h *MilestoneHandler) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "plan_maestro_id y nombre son requeridos")
		return
	}

	m, err := h.milestoneService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	utils.Created(c, m.ID, "Hito creado")
}

// Update PUT /hitos/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	changed, err := h.milestoneService.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, err, "Hito no encontrado")
		return
	}
	updated(c, changed, "Hito actualizado")
}

// Delete DELETE /hitos/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.milestoneService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Hito no encontrado")
		return
	}
	utils.SuccessWithMessage(c, "Hito eliminado", nil)
}
