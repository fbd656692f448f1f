/**
* Name: 			gateway.go
* Description: 		API gateway 라우팅
* Workflow: 		서비스 목록, 헬스 fan-out, prefix 프록시, 인증 경로 passthrough
 */
package gateway

import (
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/gin-gonic/gin"
)

const ServiceName = "api-gateway"

const (
	UserService       = "user-service"
	ChatService       = "chat-service"
	DiagnosticService = "diagnostic-service"
)

type Options struct {
	UserURL       string
	ChatURL       string
	DiagnosticURL string
	InternalKey   string
	HealthTimeout time.Duration
	Transport     http.RoundTripper
}

type Gateway struct {
	user, chat, diagnostic Upstream
	internalKey            string
	healthTimeout          time.Duration
	client                 *http.Client
	transport              http.RoundTripper
}

type RootResponse struct {
	Service  string            `json:"service" example:"HealPrint API Gateway"`
	Status   string            `json:"status" example:"running"`
	Services map[string]string `json:"services"`
}

type HealthResponse struct {
	Gateway  string            `json:"gateway" example:"healthy"`
	Services map[string]string `json:"services"`
}

func New(opts Options) (*Gateway, error) {
	user, err := ParseUpstream(UserService, "User", opts.UserURL)
	if err != nil {
		return nil, err
	}
	chat, err := ParseUpstream(ChatService, "Chat", opts.ChatURL)
	if err != nil {
		return nil, err
	}
	diag, err := ParseUpstream(DiagnosticService, "Diagnostic", opts.DiagnosticURL)
	if err != nil {
		return nil, err
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 5 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Gateway{
		user:          user,
		chat:          chat,
		diagnostic:    diag,
		internalKey:   opts.InternalKey,
		healthTimeout: opts.HealthTimeout,
		client:        &http.Client{Transport: transport},
		transport:     transport,
	}, nil
}

func (g *Gateway) proxy(up Upstream, prefix string) *httputil.ReverseProxy {
	return newProxy(up, prefix, g.internalKey, g.transport)
}

// Mount authLimit 은 로그인/회원가입/Google 로그인 경로에 적용
func (g *Gateway) Mount(r gin.IRouter, authLimit gin.HandlerFunc) {
	r.GET("/", g.Root)
	r.GET("/health", g.Health)

	userProxy := proxyHandler(g.proxy(g.user, "/users"))
	chatProxy := proxyHandler(g.proxy(g.chat, "/chat"))
	diagProxy := proxyHandler(g.proxy(g.diagnostic, "/diagnostic"))
	r.Any("/users/*path", userProxy)
	r.Any("/chat/*path", chatProxy)
	r.Any("/diagnostic/*path", diagProxy)

	// Set-Cookie 가 게이트웨이 도메인으로 발급되도록 경로 그대로 전달
	authProxy := proxyHandler(g.proxy(g.user, ""))
	r.Any("/auth/*path", authLimit, authProxy)
	r.POST("/login", authLimit, authProxy)
	r.POST("/register", authLimit, authProxy)
}

// Root godoc
// @Summary      게이트웨이 정보
// @Tags         Gateway
// @Produce      json
// @Success      200 {object} gateway.RootResponse
// @Router       / [get]
func (g *Gateway) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Service: "HealPrint API Gateway",
		Status:  "running",
		Services: map[string]string{
			UserService:       g.user.URL.String(),
			ChatService:       g.chat.URL.String(),
			DiagnosticService: g.diagnostic.URL.String(),
		},
	})
}

// Health godoc
// @Summary      전체 서비스 헬스 체크
// @Description  각 서비스의 /health 를 동시에 조회합니다 (healthy, unhealthy, unreachable).
// @Tags         Gateway
// @Produce      json
// @Success      200 {object} gateway.HealthResponse
// @Router       /health [get]
func (g *Gateway) Health(c *gin.Context) {
	services := checkHealth(c.Request.Context(), g.client, []Upstream{g.user, g.chat, g.diagnostic}, g.healthTimeout)
	c.JSON(http.StatusOK, HealthResponse{Gateway: "healthy", Services: services})
}
