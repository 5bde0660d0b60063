// Package main hosts the moderation engine with its scheduler, standing in
// for the surrounding application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roadwatch/vigil/internal/config"
	"github.com/roadwatch/vigil/internal/db"
	"github.com/roadwatch/vigil/internal/db/gormkv"
	"github.com/roadwatch/vigil/internal/db/sqlite"
	"github.com/roadwatch/vigil/internal/engine"
	"github.com/roadwatch/vigil/internal/scheduler"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

var Version = "dev"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().
		Str("version", Version).
		Msg("Starting vigil moderation engine")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() { _ = store.Close() }()

	eng := engine.New(cfg, store, log.Logger)
	eng.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(eng, scheduler.Config{
		RetrainInterval: cfg.RetrainInterval(),
		PruneInterval:   cfg.PruneInterval(),
	}, log.Logger)
	go sched.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Received shutdown signal")

	sched.Stop()
	sched.Wait()
	eng.Close()

	log.Info().Msg("Engine shutdown complete")
}

// openStore picks the persistence backend: PostgreSQL when a DSN is
// configured, a local SQLite file otherwise.
func openStore(cfg *config.Config) (db.KV, error) {
	if cfg.PostgresDSN != "" {
		return gormkv.New(gormkv.Config{
			DSN:      cfg.PostgresDSN,
			MaxConns: cfg.MaxConns,
			LogLevel: gormlogger.Silent,
		})
	}

	if err := config.EnsureDataDir(); err != nil {
		return nil, err
	}
	return sqlite.New(sqlite.Config{
		Path:     cfg.DBPath,
		MaxConns: cfg.MaxConns,
	})
}
