package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"healprint/internal/config"
	"healprint/internal/middleware"
	"healprint/internal/observability"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// NewEngine 공통 미들웨어가 적용된 gin 엔진. internal 이면 X-Internal-Key 검사
func NewEngine(cfg *config.Config, internal bool) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), observability.RequestLogger(), middleware.CORS(cfg.Server.CORSOrigins))
	if internal {
		r.Use(middleware.InternalKeyMiddleware(cfg.Server.InternalAPIKey))
	}
	return r
}

// Run ctx 가 끝나면 graceful shutdown
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
