/**
* Name: 			chat_handler.go
* Description: 		Chat service HTTP 핸들러
* Workflow: 		채팅 턴, 대화 생성/조회/요약/목록, LLM 분석
 */
package handler

import (
	"errors"
	"net/http"

	"healprint/internal/agent"
	"healprint/internal/chat"
	"healprint/internal/models"
	"healprint/internal/observability"

	"github.com/gin-gonic/gin"
)

// /conversations 요청 바디
type CreateConversationRequest struct {
	UserID string `json:"user_id" example:"6f1c2a4e-8d0b-4a43-9c53-2f7c1c1d9a10"`
	Title  string `json:"title,omitempty" example:"Jawline acne"`
}

type CreateConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title" example:"New Conversation"`
}

type ConversationListResponse struct {
	UserID        string                       `json:"user_id"`
	Conversations []models.ConversationSummary `json:"conversations"`
}

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: svc}
}

func (h *ChatHandler) Mount(r gin.IRouter, limit gin.HandlerFunc) {
	r.GET("/", banner("HealPrint Chat Service"))
	r.GET("/health", h.Health)
	r.POST("/chat", limit, h.Chat)
	r.POST("/conversations", h.CreateConversation)
	r.GET("/conversation/:conversation_id", h.GetConversation)
	r.GET("/conversation/:conversation_id/summary", h.Summary)
	r.GET("/conversations/:user_id", h.ListConversations)
	r.POST("/analyze/:conversation_id", limit, h.Analyze)
}

// Chat godoc
// @Summary      채팅 메시지 전송
// @Description  사용자 메시지를 저장하고 AI 응답을 반환합니다. conversation_id 가 없으면 최근 대화를 이어가거나 새 대화를 만듭니다.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body chat.ChatRequest true "메시지, user_id, conversation_id(선택)"
// @Success      200 {object} chat.ChatResponse
// @Failure      400 {object} handler.ErrorResponse "빈 메시지 또는 user_id 누락"
// @Failure      404 {object} handler.ErrorResponse "대화 없음"
// @Failure      409 {object} handler.ErrorResponse "대화 길이 초과"
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chat.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	resp, err := h.chat.Chat(c.Request.Context(), req)
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateConversation godoc
// @Summary      새 대화 생성
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body handler.CreateConversationRequest true "user_id, title(선택)"
// @Success      201 {object} handler.CreateConversationResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /conversations [post]
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	conv, err := h.chat.CreateConversation(c.Request.Context(), req.UserID, req.Title)
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateConversationResponse{ConversationID: conv.ConversationID, Title: conv.Title})
}

// GetConversation godoc
// @Summary      대화 전체 기록 조회
// @Tags         Chat
// @Produce      json
// @Param        conversation_id path string true "대화 ID"
// @Success      200 {object} models.Conversation
// @Failure      404 {object} handler.ErrorResponse "대화 없음"
// @Router       /conversation/{conversation_id} [get]
func (h *ChatHandler) GetConversation(c *gin.Context) {
	conv, err := h.chat.Conversation(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// Summary godoc
// @Summary      대화 요약
// @Tags         Chat
// @Produce      json
// @Param        conversation_id path string true "대화 ID"
// @Success      200 {object} chat.Summary
// @Failure      404 {object} handler.ErrorResponse "대화 없음"
// @Router       /conversation/{conversation_id}/summary [get]
func (h *ChatHandler) Summary(c *gin.Context) {
	sum, err := h.chat.Summary(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// ListConversations godoc
// @Summary      사용자 대화 목록
// @Description  최근 업데이트 순으로 최대 50개의 대화를 반환합니다.
// @Tags         Chat
// @Produce      json
// @Param        user_id path string true "사용자 ID"
// @Success      200 {object} handler.ConversationListResponse
// @Router       /conversations/{user_id} [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := c.Param("user_id")
	list, err := h.chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, ConversationListResponse{UserID: userID, Conversations: list})
}

// Analyze godoc
// @Summary      대화 기반 건강 분석
// @Description  수집된 증상과 관련 건강 요인을 바탕으로 LLM 분석을 생성합니다.
// @Tags         Chat
// @Produce      json
// @Param        conversation_id path string true "대화 ID"
// @Success      200 {object} agent.Analysis
// @Failure      404 {object} handler.ErrorResponse "대화 없음"
// @Failure      422 {object} handler.ErrorResponse "수집된 증상 없음"
// @Failure      502 {object} handler.ErrorResponse "LLM 제공자 오류"
// @Failure      503 {object} handler.ErrorResponse "LLM 미설정"
// @Router       /analyze/{conversation_id} [post]
func (h *ChatHandler) Analyze(c *gin.Context) {
	analysis, err := h.chat.Analyze(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Health godoc
// @Summary      헬스 체크
// @Tags         Chat
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Failure      503 {object} handler.HealthResponse
// @Router       /health [get]
func (h *ChatHandler) Health(c *gin.Context) {
	llmStatus := Component{Name: "llm", Status: "configured"}
	if !h.chat.LLMConfigured() {
		llmStatus.Status = "fallback"
	}
	health(c, "chat-service", map[string]pinger{"database": h.chat.Ping}, llmStatus)
}

// chatErrorStatus 서비스 에러를 HTTP 상태와 메시지로 변환
func chatErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest, "Message cannot be empty"
	case errors.Is(err, chat.ErrMissingUser):
		return http.StatusBadRequest, "user_id is required"
	case errors.Is(err, chat.ErrConversationNotFound):
		return http.StatusNotFound, "Conversation not found"
	case errors.Is(err, chat.ErrConversationFull):
		return http.StatusConflict, "Conversation has reached its maximum length"
	case errors.Is(err, agent.ErrNoSymptoms):
		return http.StatusUnprocessableEntity, "No symptoms collected for analysis"
	case errors.Is(err, agent.ErrNotConfigured):
		return http.StatusServiceUnavailable, "LLM service is not configured"
	case errors.Is(err, agent.ErrAnalysisFailed):
		return http.StatusBadGateway, "Analysis failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeChatError(c *gin.Context, err error) {
	status, msg := chatErrorStatus(err)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(c.Request.Context()).Error("chat request failed", "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}
