package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Archit-bit/voice-diary-app/internal/archive"
	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/bot"
	"github.com/Archit-bit/voice-diary-app/internal/config"
	"github.com/Archit-bit/voice-diary-app/internal/extract"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
	"github.com/Archit-bit/voice-diary-app/internal/pipeline"
	"github.com/Archit-bit/voice-diary-app/internal/remind"
	"github.com/Archit-bit/voice-diary-app/internal/server"
	"github.com/Archit-bit/voice-diary-app/internal/store"
	"github.com/Archit-bit/voice-diary-app/internal/transcribe"
	"github.com/Archit-bit/voice-diary-app/web"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid timezone", "tz", cfg.Timezone, "error", err)
	}

	users, err := auth.Load(cfg.UsersPath)
	if err != nil {
		logger.Fatal("failed to load users", "path", cfg.UsersPath, "error", err)
	}

	records, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open store", "path", cfg.DBPath, "error", err)
	}

	defer records.Close()

	transcriber := transcribe.NewDeepgram(transcribe.Config{
		APIKey:  cfg.Transcriber.APIKey,
		Model:   cfg.Transcriber.Model,
		BaseURL: cfg.Transcriber.BaseURL,
	})

	extractor, err := extract.New(extract.Config{
		Provider: cfg.Extractor.Provider,
		APIKey:   cfg.Extractor.APIKey,
		Model:    cfg.Extractor.Model,
		BaseURL:  cfg.Extractor.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to create extractor", "error", err)
	}

	// audio archive (optional)
	var audioArchive *archive.Client
	if cfg.Storage.Enabled {
		audioArchive, err = archive.NewClient(archive.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Error("failed to create archive client", "error", err)
			audioArchive = nil
		} else {
			initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := audioArchive.Init(initCtx); err != nil {
				logger.Error("failed to init archive bucket", "error", err)
				audioArchive = nil
			} else {
				logger.Info("audio archive enabled", "endpoint", cfg.Storage.Endpoint)
			}
			cancel()
		}
	}

	var archiver pipeline.Archiver
	if audioArchive != nil {
		archiver = audioArchive
	}

	pipe := pipeline.New(transcriber, extractor, records, archiver)

	var archiveHealth server.HealthChecker
	if audioArchive != nil {
		archiveHealth = audioArchive
	}

	srv := server.New(users, records, pipe, archiveHealth, web.Static())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var bots []bot.Bot
	var enabledProviders []string

	if cfg.Bots.Telegram.Enabled {
		b, err := bot.NewTelegram(cfg.Bots.Telegram.Token, users, pipe, tz)
		if err != nil {
			logger.Fatal("failed to create telegram bot", "error", err)
		}

		bots = append(bots, b)
		enabledProviders = append(enabledProviders, "telegram")

		go b.Start(ctx)
	}

	if cfg.Bots.Discord.Enabled {
		b, err := bot.NewDiscord(cfg.Bots.Discord.Token, users, pipe, tz)
		if err != nil {
			logger.Fatal("failed to create discord bot", "error", err)
		}

		bots = append(bots, b)
		enabledProviders = append(enabledProviders, "discord")

		go b.Start(ctx)
	}

	if cfg.Reminder.Enabled && len(bots) > 0 {
		notifyBot := bots[0]

		reminder, err := remind.New(cfg.Reminder.Schedule, users, records, func(chatID int64, msg string) {
			if err := notifyBot.Send(chatID, msg); err != nil {
				logger.Error("reminder delivery failed", "error", err, "chatID", chatID)
			}
		}, tz)
		if err != nil {
			logger.Fatal("failed to create reminder", "error", err)
		}

		go reminder.Run(ctx)
		logger.Info("reminder enabled", "schedule", cfg.Reminder.Schedule)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("voicediary started",
			"addr", cfg.Addr,
			"extractor", cfg.Extractor.Provider,
			"bots", enabledProviders,
			"db", cfg.DBPath,
		)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	httpServer.Shutdown(shutdownCtx)
}
