package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"healprint/internal/agent"
	"healprint/internal/archiver"
	"healprint/internal/auth"
	"healprint/internal/cache"
	"healprint/internal/chat"
	"healprint/internal/config"
	"healprint/internal/diagnostic"
	"healprint/internal/models"
	"healprint/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func noLimit(c *gin.Context) { c.Next() }

var testCookie = auth.SessionCookie{Name: "access_token", Secure: true, MaxAge: 30 * time.Minute}

type fakeVerifier struct {
	ident *auth.GoogleIdentity
	err   error
}

func (f fakeVerifier) Verify(_ context.Context, raw string) (*auth.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if raw == "" {
		return nil, errors.New("empty token")
	}
	return f.ident, nil
}

type fakeExchanger struct{}

func (fakeExchanger) AuthCodeURL(state, redirectURI string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (fakeExchanger) Exchange(_ context.Context, code, _ string) (string, error) {
	if code == "bad" {
		return "", errors.New("invalid_grant")
	}
	return "id-token-for-" + code, nil
}

func newUserRouter(t *testing.T, verifier auth.IDTokenVerifier) (*gin.Engine, *storage.UserStore) {
	t.Helper()
	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "users.db"), storage.UserSchema)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := storage.NewUserStore(db)
	uh := NewUserHandler(users, auth.NewTokenManager("test-secret", 30*time.Minute, "healprint-user-service"), testCookie)
	gcfg := config.GoogleConfig{ClientID: "cid", ClientSecret: "csecret", RedirectURI: "https://healprint.xyz/auth/callback"}
	gh := NewGoogleHandler(uh, gcfg, fakeExchanger{}, verifier)

	r := gin.New()
	uh.Mount(r, noLimit)
	gh.Mount(r, noLimit)
	return r, users
}

func doJSON(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestRegisterLoginMeLogout(t *testing.T) {
	r, _ := newUserRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "Jane@HealPrint.xyz", Password: "pw", Name: "Jane"})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d body = %s", w.Code, w.Body)
	}
	reg := decode[AuthResponse](t, w)
	if reg.Email != "jane@healprint.xyz" || reg.TokenType != "bearer" || reg.AccessToken == "" {
		t.Errorf("unexpected register payload: %+v", reg)
	}

	w = doJSON(r, http.MethodPost, "/login", LoginRequest{Email: "jane@healprint.xyz", Password: "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", w.Code, w.Body)
	}
	session := findCookie(w, "access_token")
	if session == nil {
		t.Fatal("login did not set the session cookie")
	}
	if !session.HttpOnly || !session.Secure || session.SameSite != http.SameSiteNoneMode || session.MaxAge != 1800 {
		t.Errorf("unexpected cookie attributes: %+v", session)
	}

	w = doJSON(r, http.MethodGet, "/auth/me", nil, session)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d body = %s", w.Code, w.Body)
	}
	if me := decode[models.UserProfile](t, w); me.ID != reg.ID {
		t.Errorf("me = %+v, want id %s", me, reg.ID)
	}

	w = doJSON(r, http.MethodPost, "/auth/logout", nil, session)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if cleared := findCookie(w, "access_token"); cleared == nil || cleared.MaxAge > 0 || cleared.Value != "" {
		t.Errorf("logout did not clear the cookie: %+v", cleared)
	}

	if w := doJSON(r, http.MethodGet, "/auth/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me without session = %d, want 401", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newUserRouter(t, nil)
	zero := 0

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "pw", Name: "A"}},
		{"blank password", RegisterRequest{Email: "a@b.co", Password: "  ", Name: "A"}},
		{"blank name", RegisterRequest{Email: "a@b.co", Password: "pw", Name: ""}},
		{"zero age", RegisterRequest{Email: "a@b.co", Password: "pw", Name: "A", Age: &zero}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doJSON(r, http.MethodPost, "/register", tc.req); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestRegisterDuplicateEmailIgnoresCase(t *testing.T) {
	r, _ := newUserRouter(t, nil)

	doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "dup@healprint.xyz", Password: "pw", Name: "A"})
	w := doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "DUP@healprint.xyz", Password: "pw", Name: "B"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decode[ErrorResponse](t, w); got.Error != "Email already registered" {
		t.Errorf("error = %q", got.Error)
	}
}

func TestLoginFailures(t *testing.T) {
	r, _ := newUserRouter(t, nil)
	doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "a@healprint.xyz", Password: "right", Name: "A"})

	for _, req := range []LoginRequest{
		{Email: "a@healprint.xyz", Password: "wrong"},
		{Email: "nobody@healprint.xyz", Password: "right"},
		{Email: "", Password: ""},
	} {
		if w := doJSON(r, http.MethodPost, "/login", req); w.Code != http.StatusUnauthorized {
			t.Errorf("login %+v = %d, want 401", req, w.Code)
		}
	}
}

func TestProfile(t *testing.T) {
	r, _ := newUserRouter(t, nil)
	reg := decode[AuthResponse](t, doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "p@healprint.xyz", Password: "pw", Name: "P"}))

	if w := doJSON(r, http.MethodGet, "/profile/"+reg.ID, nil); w.Code != http.StatusOK {
		t.Errorf("profile status = %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/profile/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing profile status = %d, want 404", w.Code)
	}
}

func TestUserHealth(t *testing.T) {
	r, _ := newUserRouter(t, nil)
	w := doJSON(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if h := decode[HealthResponse](t, w); h.Status != "healthy" || h.Service != "user-service" || len(h.Components) != 1 {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestGoogleTokenCreatesAndLinks(t *testing.T) {
	ident := &auth.GoogleIdentity{Subject: "g-123", Email: "jane@healprint.xyz", EmailVerified: true, Name: "Jane G", Picture: "https://pic"}
	r, users := newUserRouter(t, fakeVerifier{ident: ident})

	// 기존 이메일 계정에 연결
	reg := decode[AuthResponse](t, doJSON(r, http.MethodPost, "/register", RegisterRequest{Email: "jane@healprint.xyz", Password: "pw", Name: "Jane"}))
	w := doJSON(r, http.MethodPost, "/auth/google/token", GoogleTokenRequest{Token: "credential"})
	if w.Code != http.StatusOK {
		t.Fatalf("token status = %d body = %s", w.Code, w.Body)
	}
	got := decode[AuthResponse](t, w)
	if got.ID != reg.ID || got.AuthProvider != models.AuthProviderEmail {
		t.Errorf("expected linked email account, got %+v", got)
	}
	linked, err := users.GetUserByGoogleID(context.Background(), "g-123")
	if err != nil || linked.ID != reg.ID || linked.Picture != "https://pic" {
		t.Errorf("google id not linked: %+v %v", linked, err)
	}
	if findCookie(w, "access_token") == nil {
		t.Error("google sign-in did not set the session cookie")
	}

	// 같은 google_id 로 다시 로그인
	if again := decode[AuthResponse](t, doJSON(r, http.MethodPost, "/auth/google/token", GoogleTokenRequest{Token: "credential"})); again.ID != reg.ID {
		t.Errorf("second sign-in returned %s, want %s", again.ID, reg.ID)
	}
}

func TestGoogleTokenCreatesGoogleUser(t *testing.T) {
	ident := &auth.GoogleIdentity{Subject: "g-new", Email: "new@healprint.xyz", EmailVerified: true}
	r, users := newUserRouter(t, fakeVerifier{ident: ident})

	w := doJSON(r, http.MethodPost, "/auth/google/token", GoogleTokenRequest{Token: "credential"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	got := decode[AuthResponse](t, w)
	if got.AuthProvider != models.AuthProviderGoogle || got.Name != "new" {
		t.Errorf("unexpected google user: %+v", got)
	}
	u, err := users.GetUserByEmail(context.Background(), "new@healprint.xyz")
	if err != nil || u.HasPassword() {
		t.Fatalf("google user = %+v, %v", u, err)
	}

	// Google 전용 계정은 비밀번호 로그인 불가
	if w := doJSON(r, http.MethodPost, "/login", LoginRequest{Email: "new@healprint.xyz", Password: ""}); w.Code != http.StatusUnauthorized {
		t.Errorf("password login for google account = %d, want 401", w.Code)
	}
}

func TestGoogleTokenRejectsUnverifiedEmail(t *testing.T) {
	r, _ := newUserRouter(t, fakeVerifier{err: auth.ErrEmailNotVerified})
	if w := doJSON(r, http.MethodPost, "/auth/google/token", GoogleTokenRequest{Token: "credential"}); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/auth/google/token", GoogleTokenRequest{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing token status = %d, want 400", w.Code)
	}
}

func TestGoogleCodeFlow(t *testing.T) {
	ident := &auth.GoogleIdentity{Subject: "g-code", Email: "code@healprint.xyz", EmailVerified: true, Name: "Code"}
	r, _ := newUserRouter(t, fakeVerifier{ident: ident})

	w := doJSON(r, http.MethodGet, "/auth/google/url", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("url status = %d", w.Code)
	}
	u := decode[GoogleURLResponse](t, w)
	stateCookie := findCookie(w, auth.StateCookieName)
	if stateCookie == nil || stateCookie.Value != u.State || !strings.Contains(u.URL, u.State) {
		t.Fatalf("state not bound: %+v %+v", u, stateCookie)
	}

	w = doJSON(r, http.MethodPost, "/auth/google/callback", GoogleCallbackRequest{Code: "abc", State: "forged"}, stateCookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("forged state = %d, want 400", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/auth/google/callback", GoogleCallbackRequest{Code: "abc", RedirectURI: "https://evil.example.com"}, stateCookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("foreign redirect = %d, want 400", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/auth/google/callback", GoogleCallbackRequest{Code: "bad"}, stateCookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("failed exchange = %d, want 401", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/auth/google/callback", GoogleCallbackRequest{Code: "abc", State: u.State}, stateCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("callback status = %d body = %s", w.Code, w.Body)
	}
	if got := decode[AuthResponse](t, w); got.Email != "code@healprint.xyz" {
		t.Errorf("unexpected callback payload: %+v", got)
	}
}

func TestGoogleNotConfigured(t *testing.T) {
	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "users.db"), storage.UserSchema)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	uh := NewUserHandler(storage.NewUserStore(db), auth.NewTokenManager("s", time.Minute, "i"), testCookie)
	r := gin.New()
	NewGoogleHandler(uh, config.GoogleConfig{}, nil, nil).Mount(r, noLimit)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/auth/google/url"},
		{http.MethodPost, "/auth/google/callback"},
		{http.MethodPost, "/auth/google/token"},
	} {
		w := doJSON(r, tc.method, tc.path, map[string]string{"code": "x", "token": "y"})
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s = %d, want 503", tc.method, tc.path, w.Code)
		}
	}
}

func newChatService(t *testing.T) (*chat.Service, *archiver.Archiver) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.OpenSQLite(context.Background(), filepath.Join(dir, "chat.db"), storage.ChatSchema)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := chat.NewService(storage.NewConversationStore(db), cache.New(time.Hour), agent.New(nil, nil, agent.Options{}), chat.Options{MaxConversationLength: 50})
	arc, err := archiver.New(filepath.Join(dir, "records"), storage.NewRecordStore(db))
	if err != nil {
		t.Fatalf("archiver.New: %v", err)
	}
	return svc, arc
}

func newChatRouter(t *testing.T) *gin.Engine {
	svc, _ := newChatService(t)
	r := gin.New()
	NewChatHandler(svc).Mount(r, noLimit)
	return r
}

func TestChatEndpoints(t *testing.T) {
	r := newChatRouter(t)

	w := doJSON(r, http.MethodPost, "/chat", chat.ChatRequest{UserID: "u1", Message: "hello, I have acne"})
	if w.Code != http.StatusOK {
		t.Fatalf("chat status = %d body = %s", w.Code, w.Body)
	}
	resp := decode[chat.ChatResponse](t, w)
	if !resp.FallbackMode || resp.ConversationID == "" {
		t.Errorf("unexpected chat response: %+v", resp)
	}

	w = doJSON(r, http.MethodGet, "/conversation/"+resp.ConversationID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("conversation status = %d", w.Code)
	}
	if conv := decode[models.Conversation](t, w); len(conv.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(conv.Messages))
	}

	w = doJSON(r, http.MethodGet, "/conversation/"+resp.ConversationID+"/summary", nil)
	if sum := decode[chat.Summary](t, w); sum.MessageCount != 2 || sum.UserID != "u1" {
		t.Errorf("unexpected summary: %+v", sum)
	}

	w = doJSON(r, http.MethodGet, "/conversations/u1", nil)
	if list := decode[ConversationListResponse](t, w); len(list.Conversations) != 1 || list.Conversations[0].MessageCount != 2 {
		t.Errorf("unexpected list: %+v", list)
	}

	// LLM 미설정
	if w := doJSON(r, http.MethodPost, "/analyze/"+resp.ConversationID, nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("analyze status = %d, want 503", w.Code)
	}
}

func TestChatErrors(t *testing.T) {
	r := newChatRouter(t)

	if w := doJSON(r, http.MethodPost, "/chat", chat.ChatRequest{UserID: "u1", Message: " "}); w.Code != http.StatusBadRequest {
		t.Errorf("empty message = %d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/chat", chat.ChatRequest{UserID: "u1", ConversationID: "nope", Message: "hi"}); w.Code != http.StatusNotFound {
		t.Errorf("unknown conversation = %d, want 404", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/conversation/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("get unknown conversation = %d, want 404", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/conversations", CreateConversationRequest{UserID: "u1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	created := decode[CreateConversationResponse](t, w)
	if created.Title != "New Conversation" {
		t.Errorf("title = %q", created.Title)
	}
	if w := doJSON(r, http.MethodPost, "/analyze/"+created.ConversationID, nil); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("analyze without symptoms = %d, want 422", w.Code)
	}
}

func TestChatWebSocket(t *testing.T) {
	svc, _ := newChatService(t)
	r := gin.New()
	NewChatSocket(svc, nil).Mount(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?user_id=u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	var first chat.ChatResponse
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if first.ConversationID == "" || first.Response == "" {
		t.Fatalf("unexpected frame: %+v", first)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("my skin is dry"))
	var second chat.ChatResponse
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Errorf("socket switched conversation: %s -> %s", first.ConversationID, second.ConversationID)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("   "))
	var errFrame ErrorResponse
	if err := conn.ReadJSON(&errFrame); err != nil || errFrame.Error == "" {
		t.Errorf("expected error frame, got %+v %v", errFrame, err)
	}
}

func TestChatWebSocketRequiresUser(t *testing.T) {
	svc, _ := newChatService(t)
	r := gin.New()
	NewChatSocket(svc, nil).Mount(r)
	if w := doJSON(r, http.MethodGet, "/ws/chat", nil); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

type fakeSTT struct{ text string }

func (f fakeSTT) Transcribe(context.Context, []byte) (string, error) { return f.text, nil }
func (fakeSTT) Close() error                                         { return nil }

type fakeTTS struct{}

func (fakeTTS) Synthesize(_ context.Context, text string) ([]byte, error) {
	return []byte("RIFF" + text), nil
}
func (fakeTTS) Close() error { return nil }

func voiceRequest(t *testing.T, userID string, audio []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("user_id", userID)
	fw, err := mw.CreateFormFile("audio", "clip.wav")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(audio)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/chat/voice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVoiceChat(t *testing.T) {
	svc, arc := newChatService(t)
	r := gin.New()
	NewVoiceHandler(svc, fakeSTT{text: "hello there"}, fakeTTS{}, arc, 1<<20).Mount(r, noLimit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, "u1", []byte("RIFFuser")))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	var resp struct {
		chat.ChatResponse
		Transcript string `json:"transcript"`
		AudioURL   string `json:"audio_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Transcript != "hello there" || resp.AudioURL == "" || resp.ConversationID == "" {
		t.Fatalf("unexpected voice response: %+v", resp)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.AudioURL, nil))
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "RIFF") {
		t.Errorf("audio status = %d body = %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conversation/"+resp.ConversationID+"/audio/missing.wav", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing clip = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conversation/"+resp.ConversationID+"/audio", nil))
	var list AudioListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || w.Code != http.StatusOK {
		t.Fatalf("list status = %d, err = %v", w.Code, err)
	}
	if len(list.Clips) != 2 {
		t.Fatalf("clips = %+v, want user and reply clips", list.Clips)
	}
	if list.Clips[1].URL != resp.AudioURL {
		t.Errorf("reply clip url = %q, want %q", list.Clips[1].URL, resp.AudioURL)
	}
}

func TestVoiceChatDisabled(t *testing.T) {
	svc, arc := newChatService(t)
	r := gin.New()
	NewVoiceHandler(svc, nil, nil, arc, 0).Mount(r, noLimit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, "u1", []byte("RIFF")))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestDiagnosticEndpoints(t *testing.T) {
	r := gin.New()
	NewDiagnosticHandler(diagnostic.NewAnalyzer(nil, 0.7)).Mount(r)

	w := doJSON(r, http.MethodPost, "/analyze", models.SymptomReport{
		UserID:           "u1",
		SkinSymptoms:     []string{"Acne on chin"},
		HairSymptoms:     []string{"hair thinning"},
		LifestyleFactors: []string{"stress"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	res := decode[models.DiagnosticResult](t, w)
	if res.ConfidenceScore != 0.7 || !res.ReferralSuggested || len(res.NextSteps) != 4 {
		t.Errorf("unexpected result: %+v", res)
	}

	if w := doJSON(r, http.MethodPost, "/analyze", models.SymptomReport{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing user_id = %d, want 400", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/patterns", nil)
	if p := decode[PatternsResponse](t, w); len(p.Patterns) == 0 {
		t.Error("expected default patterns")
	}
}
