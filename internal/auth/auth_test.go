package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 30*time.Minute, "healprint-user-service")

	token, err := m.GenerateToken("u1", "jane@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "jane@example.com" || claims.Subject != "u1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 30*time.Minute {
		t.Errorf("token lifetime = %v, want 30m", got)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", 30*time.Minute, "iss")
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := m.GenerateToken("u1", "a@b.c")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenWrongSecretOrIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", time.Minute, "iss").GenerateToken("u1", "a@b.c")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenManager("other", time.Minute, "iss").ValidateToken(token); err == nil {
		t.Error("expected an error for a token signed with another secret")
	}
	if _, err := NewTokenManager("secret", time.Minute, "someone-else").ValidateToken(token); !errors.Is(err, ErrInvalidIssuer) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidIssuer", err)
	}
}

func TestTokenRejectsNoneAlg(t *testing.T) {
	claims := &Claims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{Issuer: "iss", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenManager("secret", time.Minute, "iss").ValidateToken(token); err == nil {
		t.Error("expected alg=none token to be rejected")
	}
}

func TestSessionCookieSetAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc := SessionCookie{Name: "access_token", Domain: "healprint.xyz", Secure: true, MaxAge: 30 * time.Minute}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	sc.Set(c, "tok")

	cookie := w.Header().Get("Set-Cookie")
	for _, want := range []string{"access_token=tok", "Max-Age=1800", "Path=/", "Domain=healprint.xyz", "HttpOnly", "Secure", "SameSite=None"} {
		if !strings.Contains(cookie, want) {
			t.Errorf("Set-Cookie %q missing %q", cookie, want)
		}
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	sc.Clear(c)

	resp := http.Response{Header: w.Header()}
	cookies := resp.Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expired empty cookie, got %+v", cookies)
	}
}

func TestSessionCookieInsecureUsesLax(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc := SessionCookie{Name: "access_token", MaxAge: time.Minute}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	sc.Set(c, "tok")

	if cookie := w.Header().Get("Set-Cookie"); !strings.Contains(cookie, "SameSite=Lax") || strings.Contains(cookie, "Secure") {
		t.Errorf("unexpected insecure cookie %q", cookie)
	}
}

func TestGoogleVerifier(t *testing.T) {
	v := &GoogleVerifier{audience: "client", validate: func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		if aud != "client" {
			t.Errorf("audience = %q", aud)
		}
		switch token {
		case "good":
			return &idtoken.Payload{Subject: "g-1", Claims: map[string]interface{}{
				"email": "jane@gmail.com", "email_verified": true, "name": "Jane", "picture": "https://pic",
			}}, nil
		case "unverified":
			return &idtoken.Payload{Subject: "g-2", Claims: map[string]interface{}{
				"email": "x@gmail.com", "email_verified": "false",
			}}, nil
		}
		return nil, errors.New("bad token")
	}}

	ident, err := v.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("Verify(good) error: %v", err)
	}
	if ident.Subject != "g-1" || ident.Email != "jane@gmail.com" || ident.Name != "Jane" || ident.Picture != "https://pic" {
		t.Errorf("unexpected identity: %+v", ident)
	}
	if _, err := v.Verify(context.Background(), "unverified"); !errors.Is(err, ErrEmailNotVerified) {
		t.Errorf("Verify(unverified) error = %v", err)
	}
	if _, err := v.Verify(context.Background(), "garbage"); err == nil {
		t.Error("expected Verify(garbage) to fail")
	}
}

func TestGoogleOAuthExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("code") != "auth-code" || r.Form.Get("redirect_uri") != "http://localhost:5173/cb" {
			t.Errorf("unexpected token request: %v", r.Form)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at", "token_type": "Bearer", "expires_in": 3600, "id_token": "raw-id-token",
		})
	}))
	defer srv.Close()

	g := &GoogleOAuth{cfg: oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "https://healprint.xyz/cb",
		Scopes:       []string{"openid", "email"},
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"},
	}}

	raw, err := g.Exchange(context.Background(), "auth-code", "http://localhost:5173/cb")
	if err != nil {
		t.Fatalf("Exchange() error: %v", err)
	}
	if raw != "raw-id-token" {
		t.Errorf("id token = %q", raw)
	}

	u, err := url.Parse(g.AuthCodeURL("state-1", ""))
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("state") != "state-1" || q.Get("redirect_uri") != "https://healprint.xyz/cb" || q.Get("client_id") != "client" {
		t.Errorf("unexpected auth url query: %v", q)
	}
}
