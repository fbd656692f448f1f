package middleware

import (
	"errors"
	"net/http"
	"strings"

	"healprint/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// AuthMiddleware 세션 쿠키 우선, 쿠키가 없거나 검증 실패 시 Authorization: Bearer 헤더
func AuthMiddleware(tokens *auth.TokenManager, cookie auth.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			claims *auth.Claims
			err    error
		)
		if tokenString := cookie.Read(c); tokenString != "" {
			claims, err = tokens.ValidateToken(tokenString)
		}

		if claims == nil {
			authHeader := c.GetHeader("Authorization")
			switch {
			case authHeader == "" && err == nil:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
				return
			case authHeader == "":
				// 쿠키 검증 오류를 그대로 응답
			case !strings.HasPrefix(authHeader, "Bearer "):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
				return
			default:
				claims, err = tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			}
		}

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
