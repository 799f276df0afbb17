package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unnichat-backend/internal/config"
	"unnichat-backend/internal/database"
	"unnichat-backend/internal/logger"
	"unnichat-backend/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	ctx := context.Background()
	created, err := database.SeedAdmin(ctx, db, cfg.SeedAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding administrator failed")
	}
	if created {
		log.Info().Str("email", cfg.SeedAdmin.Email).Msg("seeded administrator account")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := server.New(server.Deps{Config: cfg, DB: db, Logger: log, Registry: reg})

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("env", cfg.Env).Msg("server listening")
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
