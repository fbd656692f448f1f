package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healprint/internal/auth"
	"healprint/internal/config"
	"healprint/internal/handler"
	"healprint/internal/middleware"
	"healprint/internal/observability"
	"healprint/internal/server"
	"healprint/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	observability.Setup("user-service", cfg.LogLevel, cfg.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, closeDB, err := openUsers(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open user database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeDB()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	cookie := auth.SessionCookie{
		Name:   cfg.Cookie.Name,
		Domain: cfg.Cookie.Domain,
		Secure: cfg.Cookie.Secure,
		MaxAge: cfg.Cookie.MaxAge,
	}

	var (
		oauth    auth.CodeExchanger
		verifier auth.IDTokenVerifier
	)
	if cfg.Google.Enabled() {
		oauth = auth.NewGoogleOAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI, cfg.Google.Scopes)
	}
	if cfg.Google.ClientID != "" {
		verifier = auth.NewGoogleVerifier(cfg.Google.ClientID)
	} else {
		slog.Warn("GOOGLE_CLIENT_ID is not set, Google sign-in is disabled")
	}

	userHandler := handler.NewUserHandler(users, tokens, cookie)
	googleHandler := handler.NewGoogleHandler(userHandler, cfg.Google, oauth, verifier)

	authLimit := middleware.RateLimit(cfg.RateLimit.AuthEvery, cfg.RateLimit.AuthBurst)
	router := server.NewEngine(cfg, true)
	userHandler.Mount(router, authLimit)
	googleHandler.Mount(router, authLimit)

	if err := server.Run(ctx, cfg.Server.UserAddr, router); err != nil {
		slog.Error("user service stopped", "error", err)
		os.Exit(1)
	}
}

// openUsers DATABASE_DRIVER 에 따라 sqlite 또는 gorm/mysql 저장소
func openUsers(ctx context.Context, db config.DatabaseConfig) (storage.UserRepository, func(), error) {
	if db.Driver == "mysql" {
		gdb, err := storage.OpenMySQL(db.MySQLDSN, db.GormLogLevel)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGormUserStore(gdb), func() { sqlDB.Close() }, nil
	}

	sdb, err := storage.OpenSQLite(ctx, db.UserDBPath, storage.UserSchema)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewUserStore(sdb), func() { sdb.Close() }, nil
}
