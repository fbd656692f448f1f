package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healprint/internal/auth"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *auth.TokenManager, cookie auth.SessionCookie) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, cookie), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID)})
	})
	return r
}

func TestAuthMiddlewareCookieAndBearer(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, "iss")
	cookie := auth.SessionCookie{Name: "access_token", MaxAge: time.Minute}
	r := newAuthRouter(tokens, cookie)

	tok, err := tokens.GenerateToken("u1", "a@b.c")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cookie auth status = %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["user_id"] != "u1" {
		t.Errorf("user_id = %q", body["user_id"])
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer auth status = %d", w.Code)
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, "iss")
	r := newAuthRouter(tokens, auth.SessionCookie{Name: "access_token"})

	cases := map[string]func(*http.Request){
		"missing":    func(*http.Request) {},
		"bad scheme": func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
		"garbage":    func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") },
		"bad cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "abc"}) },
	}
	for name, mutate := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		mutate(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
	}
}

func TestAuthMiddlewareFallsBackToBearerWhenCookieFails(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, "iss")
	r := newAuthRouter(tokens, auth.SessionCookie{Name: "access_token"})

	expired := auth.NewTokenManager("secret", -time.Minute, "iss")
	stale, err := expired.GenerateToken("old", "a@b.c")
	if err != nil {
		t.Fatal(err)
	}
	valid, err := tokens.GenerateToken("u1", "a@b.c")
	if err != nil {
		t.Fatal(err)
	}

	for name, cookieValue := range map[string]string{"expired cookie": stale, "garbage cookie": "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookieValue})
		req.Header.Set("Authorization", "Bearer "+valid)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body = %s", name, w.Code, w.Body.String())
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["user_id"] != "u1" {
			t.Errorf("%s: user_id = %q, want u1", name, body["user_id"])
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: stale})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Token has expired") {
		t.Errorf("expired cookie alone: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestInternalKeyMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(InternalKeyMiddleware("k"))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/", ok)
	r.GET("/health", ok)
	r.GET("/chat", ok)

	check := func(path, key string, want int) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if key != "" {
			req.Header.Set(InternalKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("GET %s key=%q status = %d, want %d", path, key, w.Code, want)
		}
	}
	check("/health", "", http.StatusOK)
	check("/", "", http.StatusOK)
	check("/chat", "", http.StatusForbidden)
	check("/chat", "wrong", http.StatusForbidden)
	check("/chat", "k", http.StatusOK)
}

func TestInternalKeyDisabled(t *testing.T) {
	r := gin.New()
	r.Use(InternalKeyMiddleware(""))
	r.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(time.Hour, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("status codes = %v, want [200 200 429]", codes)
	}

	// 다른 IP 는 별도 버킷
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client status = %d", w.Code)
	}
}

func TestCORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" || w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("unexpected CORS headers: %v", w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign origin status = %d, want 403", w.Code)
	}
}
