package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const StateCookieName = "oauth_state"

// SessionCookie httpOnly 세션 쿠키 설정
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

// Set writes the session cookie. SameSite=None needs Secure, so insecure
// (local http) setups fall back to Lax.
func (s SessionCookie) Set(c *gin.Context, token string) {
	s.write(c, s.Name, token, int(s.MaxAge.Seconds()))
}

// Clear 만료된 빈 쿠키로 덮어쓰기
func (s SessionCookie) Clear(c *gin.Context) {
	s.write(c, s.Name, "", -1)
}

func (s SessionCookie) Read(c *gin.Context) string {
	v, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return v
}

func (s SessionCookie) SetState(c *gin.Context, state string) {
	s.write(c, StateCookieName, state, 600)
}

func (s SessionCookie) ReadState(c *gin.Context) string {
	v, err := c.Cookie(StateCookieName)
	if err != nil {
		return ""
	}
	return v
}

func (s SessionCookie) ClearState(c *gin.Context) {
	s.write(c, StateCookieName, "", -1)
}

func (s SessionCookie) write(c *gin.Context, name, value string, maxAge int) {
	if s.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", s.Domain, s.Secure, true)
}
