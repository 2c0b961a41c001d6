package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gwp-backend/internal/utils"
	"gwp-backend/pkg/limiter"
)

// UploadLimit bounds concurrent uploads per user. A failing limiter backend
// lets the request through.
func UploadLimit(l limiter.Limiter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok || l == nil {
			c.Next()
			return
		}
		key := strconv.FormatUint(uint64(userID), 10)

		if err := l.Acquire(c.Request.Context(), key); err != nil {
			if errors.Is(err, limiter.ErrLimitReached) {
				utils.ErrorResponse(c, http.StatusTooManyRequests, "Demasiadas subidas simultáneas")
				c.Abort()
				return
			}
			logger.WithError(err).Warn("upload limiter unavailable")
			c.Next()
			return
		}
		defer func() {
			if err := l.Release(context.Background(), key); err != nil {
				logger.WithError(err).WithField("user_id", userID).Warn("upload slot not released")
			}
		}()

		c.Next()
	}
}
