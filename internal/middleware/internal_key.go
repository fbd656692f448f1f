package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const InternalKeyHeader = "X-Internal-Key"

// InternalKeyMiddleware gateway 를 거치지 않은 직접 호출 차단. key 가 비어 있으면 비활성
func InternalKeyMiddleware(key string, openPaths ...string) gin.HandlerFunc {
	open := map[string]bool{"/": true, "/health": true}
	for _, p := range openPaths {
		open[p] = true
	}
	return func(c *gin.Context) {
		if key == "" || open[c.Request.URL.Path] {
			c.Next()
			return
		}
		clientKey := c.GetHeader(InternalKeyHeader)
		if subtle.ConstantTimeCompare([]byte(clientKey), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
