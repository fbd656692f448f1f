package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"healprint/internal/middleware"
	"healprint/internal/observability"

	"github.com/gin-gonic/gin"
)

// Upstream 게이트웨이 뒤의 서비스 하나
type Upstream struct {
	Key   string // user-service
	Label string // User
	URL   *url.URL
}

func ParseUpstream(key, label, rawURL string) (Upstream, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Upstream{}, fmt.Errorf("ParseUpstream(): %s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Upstream{}, fmt.Errorf("ParseUpstream(): %s: %q is not an absolute URL", key, rawURL)
	}
	return Upstream{Key: key, Label: label, URL: u}, nil
}

// newProxy prefix 를 제거한 경로로 upstream 에 전달. prefix 가 비어 있으면 경로 유지
func newProxy(up Upstream, prefix, internalKey string, transport http.RoundTripper) *httputil.ReverseProxy {
	target := up.URL
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			path := strings.TrimPrefix(pr.In.URL.Path, prefix)
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			pr.Out.URL.Path = strings.TrimRight(target.Path, "/") + path
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
			if id := observability.RequestIDFromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set(observability.RequestIDHeader, id)
			}
			pr.Out.Header.Del(middleware.InternalKeyHeader)
			if internalKey != "" {
				pr.Out.Header.Set(middleware.InternalKeyHeader, internalKey)
			}
		},
		Transport: transport,
		// CORS 응답과 X-Request-ID 는 게이트웨이만 담당
		ModifyResponse: func(resp *http.Response) error {
			resp.Header.Del(observability.RequestIDHeader)
			for name := range resp.Header {
				if strings.HasPrefix(http.CanonicalHeaderKey(name), "Access-Control-") {
					resp.Header.Del(name)
				}
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			observability.LoggerFromContext(r.Context()).Error("proxy request failed",
				"upstream", up.Key, "path", r.URL.Path, "error", err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprintf(w, `{"error":%q}`, up.Label+" service error")
		},
	}
}

func proxyHandler(p *httputil.ReverseProxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.ServeHTTP(c.Writer, c.Request)
	}
}
