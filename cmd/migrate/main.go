// Command migrate aplica (up) o revierte la última (down) migración del esquema.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/shop-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-admin/migrations"
	"github.com/jhoicas/shop-admin/pkg/config"
	"github.com/jhoicas/shop-admin/pkg/logger"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		fmt.Fprintln(os.Stderr, "uso: migrate [up|down]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if direction == "down" {
		name, err := postgres.Rollback(ctx, pool, migrations.FS)
		if err != nil {
			log.Fatal().Err(err).Msg("revertir migración")
		}
		if name == "" {
			log.Info().Msg("no hay migraciones aplicadas")
			return
		}
		log.Info().Str("migration", name).Msg("migración revertida")
		return
	}

	applied, err := postgres.Migrate(ctx, pool, migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}
	log.Info().Int("applied", len(applied)).Msg("esquema al día")
}
