/**
* Name: 			google_handler.go
* Description: 		Google 로그인 핸들러 (OAuth code flow, One Tap ID 토큰)
* Workflow: 		동의 화면 URL 발급, code 교환, ID 토큰 검증, 사용자 upsert, 세션 발급
 */
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"healprint/internal/auth"
	"healprint/internal/config"
	"healprint/internal/models"
	"healprint/internal/observability"
	"healprint/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GoogleURLResponse struct {
	URL   string `json:"url" example:"https://accounts.google.com/o/oauth2/auth?..."`
	State string `json:"state" example:"3f0c1c4e-5b7a-4d8e-9a61-0d2f4a8b9c10"`
}

// /auth/google/callback 요청 바디
type GoogleCallbackRequest struct {
	Code        string `json:"code" example:"4/0AX4XfWh..."`
	RedirectURI string `json:"redirect_uri,omitempty" example:"https://healprint.xyz/auth/callback"`
	State       string `json:"state,omitempty"`
}

// /auth/google/token 요청 바디 (One Tap credential)
type GoogleTokenRequest struct {
	Token string `json:"token" example:"eyJhbGciOiJSUzI1NiIsImtpZCI6..."`
}

type GoogleHandler struct {
	*UserHandler
	cfg      config.GoogleConfig
	oauth    auth.CodeExchanger
	verifier auth.IDTokenVerifier
}

// NewGoogleHandler oauth 또는 verifier 가 nil 이면 해당 엔드포인트는 503
func NewGoogleHandler(users *UserHandler, cfg config.GoogleConfig, oauth auth.CodeExchanger, verifier auth.IDTokenVerifier) *GoogleHandler {
	return &GoogleHandler{UserHandler: users, cfg: cfg, oauth: oauth, verifier: verifier}
}

func (h *GoogleHandler) Mount(r gin.IRouter, limit gin.HandlerFunc) {
	g := r.Group("/auth/google")
	g.GET("/url", h.AuthURL)
	g.POST("/callback", limit, h.Callback)
	g.POST("/token", limit, h.Token)
}

// AuthURL godoc
// @Summary      Google 동의 화면 URL
// @Description  Google 로그인 URL과 state 를 반환합니다. state 는 oauth_state 쿠키에도 저장됩니다.
// @Tags         Auth
// @Produce      json
// @Param        redirect_uri query string false "허용된 redirect URI"
// @Success      200 {object} handler.GoogleURLResponse
// @Failure      400 {object} handler.ErrorResponse "허용되지 않은 redirect URI"
// @Failure      503 {object} handler.ErrorResponse "Google 로그인 미설정"
// @Router       /auth/google/url [get]
func (h *GoogleHandler) AuthURL(c *gin.Context) {
	if h.oauth == nil || !h.cfg.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	redirectURI := c.Query("redirect_uri")
	if !h.cfg.AllowedRedirect(redirectURI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "redirect_uri is not allowed"})
		return
	}

	state := uuid.NewString()
	h.cookie.SetState(c, state)
	c.JSON(http.StatusOK, GoogleURLResponse{URL: h.oauth.AuthCodeURL(state, redirectURI), State: state})
}

// Callback godoc
// @Summary      Google OAuth 콜백
// @Description  authorization code 를 교환하고 ID 토큰을 검증한 뒤 세션 쿠키를 발급합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.GoogleCallbackRequest true "code, redirect_uri, state"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청 또는 state 불일치"
// @Failure      401 {object} handler.ErrorResponse "Google 인증 실패"
// @Failure      503 {object} handler.ErrorResponse "Google 로그인 미설정"
// @Router       /auth/google/callback [post]
func (h *GoogleHandler) Callback(c *gin.Context) {
	if h.oauth == nil || h.verifier == nil || !h.cfg.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	var req GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}
	if !h.cfg.AllowedRedirect(req.RedirectURI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "redirect_uri is not allowed"})
		return
	}
	if req.State != "" && req.State != h.cookie.ReadState(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	h.cookie.ClearState(c)

	ctx := c.Request.Context()
	log := observability.LoggerFromContext(ctx)
	rawIDToken, err := h.oauth.Exchange(ctx, req.Code, req.RedirectURI)
	if err != nil {
		log.Warn("Callback(): code exchange failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}
	h.signIn(c, rawIDToken)
}

// Token godoc
// @Summary      Google ID 토큰 로그인 (One Tap)
// @Description  클라이언트가 받은 Google ID 토큰을 검증하고 세션 쿠키를 발급합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.GoogleTokenRequest true "Google ID 토큰"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse "토큰 누락"
// @Failure      401 {object} handler.ErrorResponse "유효하지 않은 토큰 또는 미인증 이메일"
// @Failure      503 {object} handler.ErrorResponse "Google 로그인 미설정"
// @Router       /auth/google/token [post]
func (h *GoogleHandler) Token(c *gin.Context) {
	if h.verifier == nil || h.cfg.ClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	var req GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google token is required"})
		return
	}
	h.signIn(c, req.Token)
}

func (h *GoogleHandler) signIn(c *gin.Context, rawIDToken string) {
	ctx := c.Request.Context()
	ident, err := h.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		if errors.Is(err, auth.ErrEmailNotVerified) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google email is not verified"})
			return
		}
		observability.LoggerFromContext(ctx).Warn("signIn(): google token rejected", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	user, err := h.upsertGoogleUser(ctx, ident)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("signIn(): upsert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in with Google"})
		return
	}
	h.issueSession(c, http.StatusOK, user)
}

// upsertGoogleUser google_id 로 조회, 없으면 이메일 계정에 연결, 그것도 없으면 생성
func (h *GoogleHandler) upsertGoogleUser(ctx context.Context, ident *auth.GoogleIdentity) (*models.User, error) {
	for attempt := 0; attempt < 2; attempt++ {
		user, err := h.users.GetUserByGoogleID(ctx, ident.Subject)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, storage.ErrUserNotFound) {
			return nil, err
		}

		user, err = h.users.GetUserByEmail(ctx, ident.Email)
		switch {
		case err == nil:
			if err := h.users.LinkGoogleAccount(ctx, user.ID, ident.Subject, ident.Picture); err != nil {
				if errors.Is(err, storage.ErrGoogleIDExists) {
					continue
				}
				return nil, err
			}
			return h.users.GetUserByID(ctx, user.ID)
		case !errors.Is(err, storage.ErrUserNotFound):
			return nil, err
		}

		name := strings.TrimSpace(ident.Name)
		if name == "" {
			name, _, _ = strings.Cut(ident.Email, "@")
		}
		googleID := ident.Subject
		user = &models.User{
			ID:           uuid.NewString(),
			Email:        ident.Email,
			Name:         name,
			GoogleID:     &googleID,
			Picture:      ident.Picture,
			AuthProvider: models.AuthProviderGoogle,
			CreatedAt:    time.Now().UTC(),
		}
		err = h.users.CreateUser(ctx, user)
		if err == nil {
			return user, nil
		}
		// 동시 로그인으로 다른 요청이 먼저 생성한 경우 한 번 더 조회
		if !errors.Is(err, storage.ErrEmailExists) && !errors.Is(err, storage.ErrGoogleIDExists) {
			return nil, err
		}
	}
	return nil, errors.New("upsertGoogleUser(): account changed concurrently")
}
