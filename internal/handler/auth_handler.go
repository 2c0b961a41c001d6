package handler

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/middleware"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Faltan campos requeridos")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.Created(c, user.ID, "Usuario creado")
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Usuario y contraseña requeridos")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, resp)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := middleware.GetToken(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Sesión cerrada", nil)
}

// GetMe GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	info, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}

	utils.SuccessResponse(c, info)
}
