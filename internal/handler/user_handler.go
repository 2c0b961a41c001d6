package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// UserHandler serves /usuarios.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List GET /usuarios
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, users)
}

// Create POST /usuarios
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Faltan campos requeridos")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	utils.Created(c, user.ID, "Usuario creado")
}

// Update PUT /usuarios/:id
func (h *UserHandler) Update(c *gin.Context) {
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

	changed, err := h.userService.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	updated(c, changed, "Usuario actualizado")
}

// Delete DELETE /usuarios/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	utils.SuccessWithMessage(c, "Usuario eliminado", nil)
}
