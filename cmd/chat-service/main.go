package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healprint/internal/agent"
	"healprint/internal/archiver"
	"healprint/internal/cache"
	"healprint/internal/chat"
	"healprint/internal/config"
	"healprint/internal/diagnostic"
	"healprint/internal/handler"
	"healprint/internal/llm"
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
	observability.Setup("chat-service", cfg.LogLevel, cfg.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.OpenSQLite(ctx, cfg.Database.ChatDBPath, storage.ChatSchema)
	if err != nil {
		slog.Error("failed to open chat database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	catalog, err := diagnostic.LoadCatalog(cfg.Chat.CatalogFile)
	if err != nil {
		slog.Error("failed to load diagnostic catalog", "path", cfg.Chat.CatalogFile, "error", err)
		os.Exit(1)
	}

	var completer llm.Completer
	if cfg.LLM.Configured() {
		completer = llm.NewClient(llm.Options{
			BaseURL:  cfg.LLM.BaseURL,
			APIKey:   cfg.LLM.APIKey,
			SiteURL:  cfg.LLM.SiteURL,
			SiteName: cfg.LLM.SiteName,
			Timeout:  cfg.LLM.Timeout,
		})
	} else {
		slog.Warn("OPENROUTER_API_KEY is not set, chat runs in fallback mode")
	}
	a := agent.New(completer, catalog, agent.Options{
		ChatModel:     cfg.LLM.ChatModel,
		AnalysisModel: cfg.LLM.AnalysisModel,
		HistoryWindow: cfg.Chat.HistoryWindow,
	})

	svc := chat.NewService(storage.NewConversationStore(db), cache.New(cfg.Chat.CacheTTL), a, chat.Options{
		MaxConversationLength: cfg.Chat.MaxConversationLength,
		ListLimit:             cfg.Chat.ListLimit,
	})

	archive, err := archiver.New(cfg.Voice.ArchiveDir, storage.NewRecordStore(db))
	if err != nil {
		slog.Error("failed to prepare voice archive", "error", err)
		os.Exit(1)
	}

	var (
		stt llm.Transcriber
		tts llm.Synthesizer
	)
	if cfg.Voice.Enabled {
		opts := llm.VoiceOptions{
			CredentialsFile: cfg.Voice.CredentialsFile,
			LanguageCode:    cfg.Voice.LanguageCode,
			VoiceName:       cfg.Voice.VoiceName,
			SampleRateHertz: cfg.Voice.SampleRateHertz,
		}
		transcriber, err := llm.NewGoogleTranscriber(ctx, opts)
		if err != nil {
			slog.Error("failed to create speech client", "error", err)
			os.Exit(1)
		}
		defer transcriber.Close()
		synthesizer, err := llm.NewGoogleSynthesizer(ctx, opts)
		if err != nil {
			slog.Error("failed to create text-to-speech client", "error", err)
			os.Exit(1)
		}
		defer synthesizer.Close()
		stt, tts = transcriber, synthesizer
	}

	chatLimit := middleware.RateLimit(cfg.RateLimit.ChatEvery, cfg.RateLimit.ChatBurst)
	router := server.NewEngine(cfg, true)
	handler.NewChatHandler(svc).Mount(router, chatLimit)
	handler.NewVoiceHandler(svc, stt, tts, archive, cfg.Voice.MaxUploadBytes).Mount(router, chatLimit)
	handler.NewChatSocket(svc, cfg.Server.CORSOrigins).Mount(router)

	if err := server.Run(ctx, cfg.Server.ChatAddr, router); err != nil {
		slog.Error("chat service stopped", "error", err)
		os.Exit(1)
	}
}
