package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// PlanHandler serves /plan-maestro.
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// List GET /plan-maestro
func (h *PlanHandler) List(c *gin.Context) {
	items, err := h.planService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

// Get GET /plan-maestro/:id
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	utils.SuccessResponse(c, item)
}

// Create POST /plan-maestro
func (h *PlanHandler) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreatePlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	item, err := h.planService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	utils.Created(c, item.ID, "Item creado")
}

// Update PUT /plan-maestro/:id
func (h *PlanHandler) Update(c *gin.Context) {
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

	changed, err := h.planService.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	updated(c, changed, "Item actualizado")
}

// Delete DELETE /plan-maestro/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	utils.SuccessWithMessage(c, "Item eliminado", nil)
}
