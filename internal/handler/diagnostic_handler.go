package handler

import (
	"net/http"
	"strings"

	"healprint/internal/diagnostic"
	"healprint/internal/models"

	"github.com/gin-gonic/gin"
)

type PatternsResponse struct {
	Patterns map[string]diagnostic.Pattern `json:"patterns"`
}

type DiagnosticHandler struct {
	analyzer *diagnostic.Analyzer
}

func NewDiagnosticHandler(a *diagnostic.Analyzer) *DiagnosticHandler {
	return &DiagnosticHandler{analyzer: a}
}

func (h *DiagnosticHandler) Mount(r gin.IRouter) {
	r.GET("/", banner("HealPrint Diagnostic Service"))
	r.GET("/health", h.Health)
	r.POST("/analyze", h.Analyze)
	r.GET("/patterns", h.Patterns)
}

// Analyze godoc
// @Summary      증상 기반 진단
// @Description  피부/모발 증상과 생활 습관을 규칙 테이블과 비교해 주요 우려, 원인, 권장 사항을 반환합니다.
// @Tags         Diagnostic
// @Accept       json
// @Produce      json
// @Param        request body models.SymptomReport true "증상 보고"
// @Success      200 {object} models.DiagnosticResult
// @Failure      400 {object} handler.ErrorResponse "user_id 누락"
// @Router       /analyze [post]
func (h *DiagnosticHandler) Analyze(c *gin.Context) {
	var report models.SymptomReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(report.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	c.JSON(http.StatusOK, h.analyzer.Analyze(report))
}

// Patterns godoc
// @Summary      진단 패턴 목록
// @Tags         Diagnostic
// @Produce      json
// @Success      200 {object} handler.PatternsResponse
// @Router       /patterns [get]
func (h *DiagnosticHandler) Patterns(c *gin.Context) {
	c.JSON(http.StatusOK, PatternsResponse{Patterns: h.analyzer.Patterns()})
}

// Health godoc
// @Summary      헬스 체크
// @Tags         Diagnostic
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /health [get]
func (h *DiagnosticHandler) Health(c *gin.Context) {
	rules := Component{Name: "rules", Status: "healthy"}
	if len(h.analyzer.Patterns()) == 0 {
		rules.Status = "empty"
	}
	health(c, "diagnostic-service", nil, rules)
}
