package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"

	"github.com/tgrab/tgrab/internal/bot"
	"github.com/tgrab/tgrab/internal/config"
	"github.com/tgrab/tgrab/internal/download"
	"github.com/tgrab/tgrab/internal/logging"
	"github.com/tgrab/tgrab/internal/platform"
	"github.com/tgrab/tgrab/internal/session"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Make sure the yt-dlp binary is available before accepting updates.
	ytdlp.MustInstall(ctx, nil)

	engine := platform.NewEngine()
	store := session.NewStore(cfg.SessionTTL, cfg.MaxSessions)
	svc := download.NewService(engine, cfg.MaxUploadBytes)
	controller := bot.NewController(store, engine, svc)

	log.Info().Str("version", version).Msg("tgrab starting")
	if err := controller.Run(ctx, cfg.BotToken); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped")
	}
}
