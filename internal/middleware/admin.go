package middleware

import (
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/utils"
)

// AdminChecker decides whether a user id is privileged.
type AdminChecker interface {
	IsAdmin(userID uint) bool
}

// AdminMiddleware lets only privileged callers through. It must run after
// AuthMiddleware.
func AdminMiddleware(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok || !admins.IsAdmin(userID) {
			utils.Forbidden(c, "Se requieren permisos de administrador")
			c.Abort()
			return
		}
		c.Next()
	}
}
