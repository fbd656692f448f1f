package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "healprint/docs"
	"healprint/internal/config"
	"healprint/internal/gateway"
	"healprint/internal/middleware"
	"healprint/internal/observability"
	"healprint/internal/server"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           HealPrint API
// @version         1.0
// @description     HealPrint backend: gateway, user/auth, chat and diagnostic services.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	observability.Setup(gateway.ServiceName, cfg.LogLevel, cfg.IsProd())

	gw, err := gateway.New(gateway.Options{
		UserURL:       cfg.Server.UserServiceURL,
		ChatURL:       cfg.Server.ChatServiceURL,
		DiagnosticURL: cfg.Server.DiagnosticServiceURL,
		InternalKey:   cfg.Server.InternalAPIKey,
	})
	if err != nil {
		slog.Error("invalid upstream configuration", "error", err)
		os.Exit(1)
	}

	router := server.NewEngine(cfg, false)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	gw.Mount(router, middleware.RateLimit(cfg.RateLimit.AuthEvery, cfg.RateLimit.AuthBurst))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg.Server.GatewayAddr, router); err != nil {
		slog.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}
