package main

import (
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"gf-server/config"
	"gf-server/di"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.IsLocal() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg)

	container, err := di.NewContainer(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize container")
	}

	if err := container.GymFinderHttpServer.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
