package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 쿠키 세션을 위해 credentials 허용, origin 은 명시된 목록만
func CORS(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowCredentials = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Request-ID", InternalKeyHeader)
	config.ExposeHeaders = []string{"X-Request-ID"}
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}
