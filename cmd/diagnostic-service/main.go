package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healprint/internal/config"
	"healprint/internal/diagnostic"
	"healprint/internal/handler"
	"healprint/internal/observability"
	"healprint/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	observability.Setup("diagnostic-service", cfg.LogLevel, cfg.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table := diagnostic.DefaultTable()
	if path := cfg.Diagnostic.PatternsFile; path != "" {
		loaded, err := diagnostic.LoadTableFile(path)
		if err != nil {
			slog.Error("failed to load diagnostic patterns", "path", path, "error", err)
			os.Exit(1)
		}
		table = loaded
	}
	analyzer := diagnostic.NewAnalyzer(table, cfg.Diagnostic.Threshold)

	if path := cfg.Diagnostic.PatternsFile; path != "" {
		watchLog := observability.WithFields("component", "pattern_watcher", "path", path)
		go func() {
			if err := diagnostic.WatchTable(ctx, path, analyzer, watchLog); err != nil {
				watchLog.Error("pattern watcher stopped", "error", err)
			}
		}()
	}

	router := server.NewEngine(cfg, true)
	handler.NewDiagnosticHandler(analyzer).Mount(router)

	if err := server.Run(ctx, cfg.Server.DiagnosticAddr, router); err != nil {
		slog.Error("diagnostic service stopped", "error", err)
		os.Exit(1)
	}
}
