package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"healprint/internal/middleware"
	"healprint/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type seen struct {
	Path        string `json:"path"`
	InternalKey string `json:"internal_key"`
	RequestID   string `json:"request_id"`
	Forwarded   string `json:"forwarded"`
}

// echoServer 받은 경로와 헤더를 JSON 으로 돌려주는 upstream
func echoServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "tok", HttpOnly: true})
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(seen{
			Path:        r.URL.Path,
			InternalKey: r.Header.Get(middleware.InternalKeyHeader),
			RequestID:   r.Header.Get(observability.RequestIDHeader),
			Forwarded:   r.Header.Get("X-Forwarded-For"),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, userURL, chatURL, diagURL, key string) *gin.Engine {
	t.Helper()
	g, err := New(Options{UserURL: userURL, ChatURL: chatURL, DiagnosticURL: diagURL, InternalKey: key, HealthTimeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := gin.New()
	r.Use(observability.RequestLogger())
	g.Mount(r, func(c *gin.Context) { c.Next() })
	return r
}

func do(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPrefixProxyStripsPrefix(t *testing.T) {
	user := echoServer(t, http.StatusOK)
	chat := echoServer(t, http.StatusOK)
	diag := echoServer(t, http.StatusOK)
	r := newTestGateway(t, user.URL, chat.URL, diag.URL, "secret")

	cases := map[string]string{
		"/users/profile/u1":     "/profile/u1",
		"/chat/conversation/c1": "/conversation/c1",
		"/diagnostic/patterns":  "/patterns",
		"/auth/me":              "/auth/me",
	}
	for in, want := range cases {
		w := do(r, http.MethodGet, in, http.Header{observability.RequestIDHeader: {"req-1"}, middleware.InternalKeyHeader: {"forged"}})
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", in, w.Code)
		}
		var got seen
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got.Path != want {
			t.Errorf("%s proxied to %s, want %s", in, got.Path, want)
		}
		if got.InternalKey != "secret" {
			t.Errorf("%s internal key = %q", in, got.InternalKey)
		}
		if got.RequestID != "req-1" {
			t.Errorf("%s request id = %q", in, got.RequestID)
		}
		if got.Forwarded == "" {
			t.Errorf("%s missing X-Forwarded-For", in)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Errorf("%s leaked upstream CORS header", in)
		}
	}
}

func TestAuthPassthroughKeepsCookie(t *testing.T) {
	user := echoServer(t, http.StatusOK)
	r := newTestGateway(t, user.URL, user.URL, user.URL, "")

	w := do(r, http.MethodPost, "/login", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "access_token=tok") {
		t.Errorf("Set-Cookie not forwarded: %q", w.Header().Get("Set-Cookie"))
	}
	var got seen
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.InternalKey != "" {
		t.Errorf("internal key sent while disabled: %q", got.InternalKey)
	}
}

func TestUnreachableUpstreamReturns502(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	r := newTestGateway(t, deadURL, deadURL, deadURL, "")
	w := do(r, http.MethodGet, "/chat/conversations/u1", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Chat service error" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHealthFanOut(t *testing.T) {
	healthy := echoServer(t, http.StatusOK)
	failing := echoServer(t, http.StatusServiceUnavailable)
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	r := newTestGateway(t, healthy.URL, failing.URL, deadURL, "")
	w := do(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		UserService:       StatusHealthy,
		ChatService:       StatusUnhealthy,
		DiagnosticService: StatusUnreachable,
	}
	for k, v := range want {
		if got.Services[k] != v {
			t.Errorf("%s = %q, want %q", k, got.Services[k], v)
		}
	}
	if got.Gateway != "healthy" {
		t.Errorf("gateway = %q", got.Gateway)
	}
}

func TestRootListsServices(t *testing.T) {
	r := newTestGateway(t, "http://user:8001", "http://chat:8002", "http://diag:8003", "")
	var got RootResponse
	json.Unmarshal(do(r, http.MethodGet, "/", nil).Body.Bytes(), &got)
	if got.Services[ChatService] != "http://chat:8002" || got.Status != "running" {
		t.Errorf("unexpected root: %+v", got)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New(Options{UserURL: "localhost:8001", ChatURL: "http://c", DiagnosticURL: "http://d"}); err == nil {
		t.Error("expected an error for a URL without scheme")
	}
}

func TestWebsocketThroughChatPrefix(t *testing.T) {
	upgrader := websocket.Upgrader{}
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(r.URL.Path+":"+string(msg)))
	}))
	t.Cleanup(chat.Close)
	user := echoServer(t, http.StatusOK)
	diag := echoServer(t, http.StatusOK)

	gw := httptest.NewServer(newTestGateway(t, user.URL, chat.URL, diag.URL, "secret"))
	t.Cleanup(gw.Close)

	wsURL := "ws" + strings.TrimPrefix(gw.URL, "http") + "/chat/ws/chat?user_id=u1"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("status = %d, want 101", resp.StatusCode)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hi")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if string(msg) != "/ws/chat:hi" {
		t.Errorf("echo = %q, want %q", msg, "/ws/chat:hi")
	}
}
