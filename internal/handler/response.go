package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SuccessResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// GET / 응답
type BannerResponse struct {
	Service string `json:"service" example:"HealPrint User Service"`
	Status  string `json:"status" example:"running"`
}

type Component struct {
	Name   string `json:"name" example:"database"`
	Status string `json:"status" example:"healthy"`
	Error  string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status     string      `json:"status" example:"healthy"`
	Service    string      `json:"service" example:"user-service"`
	Components []Component `json:"components"`
}

// pinger 헬스 체크 대상
type pinger func(ctx context.Context) error

func banner(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, BannerResponse{Service: service, Status: "running"})
	}
}

// health 각 컴포넌트를 ping, 하나라도 실패하면 503 degraded
func health(c *gin.Context, service string, checks map[string]pinger, extra ...Component) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Service: service, Components: make([]Component, 0, len(checks)+len(extra))}
	status := http.StatusOK
	for name, ping := range checks {
		comp := Component{Name: name, Status: "healthy"}
		if err := ping(ctx); err != nil {
			comp.Status = "unhealthy"
			comp.Error = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		resp.Components = append(resp.Components, comp)
	}
	resp.Components = append(resp.Components, extra...)
	c.JSON(status, resp)
}
