package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origin plus any localhost port
// during development. Set FRONTEND_ORIGIN in production.
func CORSMiddleware() gin.HandlerFunc {
	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if frontendOrigin != "" && origin == frontendOrigin {
				return true
			}
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
