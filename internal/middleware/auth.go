package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gwp-backend/internal/session"
	"gwp-backend/internal/utils"
)

const (
	userIDKey = "user_id"
	tokenKey  = "token"
)

// AuthMiddleware resolves the bearer token to a user id. The token is the
// part of the Authorization header after its first space, or the whole
// header when it has none.
func AuthMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c.GetHeader("Authorization"))
		if token == "" {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		userID, ok, err := store.Lookup(c.Request.Context(), token)
		if err != nil {
			utils.InternalError(c, err)
			c.Abort()
			return
		}
		if !ok {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// ExtractToken pulls the token out of an Authorization header value.
func ExtractToken(header string) string {
	if i := strings.IndexByte(header, ' '); i >= 0 {
		return strings.TrimSpace(header[i+1:])
	}
	return strings.TrimSpace(header)
}

// GetUserID returns the authenticated caller.
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetToken returns the caller's session token.
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	s, ok := token.(string)
	return s, ok
}
