package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gwp-backend/internal/config"
)

// CORS builds the cross-origin policy from config. A "*" origin allows any
// origin.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}

	allowAll := false
	for _, o := range cfg.Origins {
		if o == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		// echo the request origin so credentials keep working with "*"
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.Origins
	}

	return cors.New(corsCfg)
}
