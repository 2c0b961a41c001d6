package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gwp-backend/internal/middleware"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

const nothingToUpdate = "Nada que actualizar"

// parseID reads a positive numeric path parameter. It answers 400 itself
// and returns false when the value is unusable.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated user id. Routes using it sit behind
// AuthMiddleware, so a miss is answered with 401.
func caller(c *gin.Context) (uint, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
	}
	return id, ok
}

// bindPayload decodes a JSON object for a partial update. A missing or
// malformed body is a 400.
func bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		utils.BadRequest(c, "Cuerpo JSON requerido")
		return nil, false
	}
	return payload, true
}

// respondError maps service errors onto status codes. notFoundMsg is the
// body of a 404.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.BadRequest(c, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, notFoundMsg)
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, "No autorizado")
	case errors.Is(err, service.ErrUsernameTaken):
		utils.Conflict(c, "El nombre de usuario ya existe")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Credenciales inválidas")
	default:
		utils.InternalError(c, err)
	}
}

// updated answers a partial update.
func updated(c *gin.Context, changed bool, message string) {
	if !changed {
		utils.SuccessWithMessage(c, nothingToUpdate, nil)
		return
	}
	utils.SuccessWithMessage(c, message, nil)
}
