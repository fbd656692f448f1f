/**
* Name: 			user_handler.go
* Description: 		User service HTTP 핸들러
* Workflow: 		회원가입, 로그인, 프로필 조회, 세션 확인, 로그아웃
 */
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"healprint/internal/auth"
	"healprint/internal/middleware"
	"healprint/internal/models"
	"healprint/internal/observability"
	"healprint/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// /register 요청 바디
type RegisterRequest struct {
	Email    string `json:"email" example:"jane@healprint.xyz"`
	Password string `json:"password" example:"password123"`
	Name     string `json:"name" example:"Jane"`
	Age      *int   `json:"age,omitempty" example:"29"`
	Country  string `json:"country,omitempty" example:"KR"`
}

// /login 요청 바디
type LoginRequest struct {
	Email    string `json:"email" example:"jane@healprint.xyz"`
	Password string `json:"password" example:"password123"`
}

// 로그인/회원가입/Google 로그인 공통 응답
type AuthResponse struct {
	models.UserProfile
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

type UserHandler struct {
	users  storage.UserRepository
	tokens *auth.TokenManager
	cookie auth.SessionCookie
}

func NewUserHandler(users storage.UserRepository, tokens *auth.TokenManager, cookie auth.SessionCookie) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, cookie: cookie}
}

// Mount 라우트 등록. limit 는 인증 엔드포인트에만 적용
func (h *UserHandler) Mount(r gin.IRouter, limit gin.HandlerFunc) {
	r.GET("/", banner("HealPrint User Service"))
	r.GET("/health", h.Health)
	r.POST("/register", limit, h.Register)
	r.POST("/login", limit, h.Login)
	r.GET("/profile/:user_id", h.Profile)
	r.GET("/auth/me", middleware.AuthMiddleware(h.tokens, h.cookie), h.Me)
	r.POST("/auth/logout", h.Logout)
}

// Register godoc
// @Summary      회원가입 (Register)
// @Description  새로운 이메일 계정을 생성하고 세션 쿠키를 발급합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.RegisterRequest true "회원가입 요청 정보"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := storage.NormalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	// " "으로 입력되는 케이스 방지
	if strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password and name cannot be empty"})
		return
	}
	if req.Age != nil && *req.Age <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Age must be a positive number"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Country:      strings.TrimSpace(req.Country),
		AuthProvider: models.AuthProviderEmail,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		observability.LoggerFromContext(c.Request.Context()).Error("Register(): failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user (database error)"})
		return
	}

	h.issueSession(c, http.StatusOK, user)
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  이메일과 비밀번호로 로그인합니다. 성공 시 httpOnly 세션 쿠키와 토큰을 함께 반환합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		observability.LoggerFromContext(c.Request.Context()).Error("Login(): GetUserByEmail failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// Google 전용 계정은 비밀번호 로그인 불가
	if !user.HasPassword() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.issueSession(c, http.StatusOK, user)
}

// Profile godoc
// @Summary      프로필 조회 (Profile)
// @Description  사용자의 공개 프로필을 조회합니다.
// @Tags         User
// @Produce      json
// @Param        user_id path string true "사용자 ID"
// @Success      200 {object} models.UserProfile
// @Failure      404 {object} handler.ErrorResponse "사용자 없음"
// @Router       /profile/{user_id} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

// Me godoc
// @Summary      현재 세션 사용자 (Me)
// @Description  세션 쿠키 또는 Bearer 토큰으로 로그인한 사용자의 프로필을 반환합니다.
// @Tags         Auth
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Success      200 {object} models.UserProfile
// @Failure      401 {object} handler.ErrorResponse "인증 토큰 누락 또는 만료"
// @Router       /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

// Logout godoc
// @Summary      로그아웃 (Logout)
// @Description  세션 쿠키를 만료시킵니다. 항상 200을 반환합니다.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} handler.SuccessResponse
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Health godoc
// @Summary      헬스 체크
// @Tags         User
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Failure      503 {object} handler.HealthResponse
// @Router       /health [get]
func (h *UserHandler) Health(c *gin.Context) {
	health(c, "user-service", map[string]pinger{"database": h.users.Ping})
}

// issueSession 토큰 발급, 쿠키 설정, 인증 응답
func (h *UserHandler) issueSession(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.cookie.Set(c, token)
	slog.InfoContext(c.Request.Context(), "session issued", "user_id", user.ID, "provider", user.AuthProvider)
	c.JSON(status, AuthResponse{UserProfile: user.Profile(), AccessToken: token, TokenType: "bearer"})
}
