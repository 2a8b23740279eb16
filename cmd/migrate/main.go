package main

import (
	"context"
	"os"

	_ "github.com/lib/pq"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/db/schema"
	"github.com/pressid/mission-orders/internal/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Error(ctx, "cannot load config", "err", err)
		return
	}

	log.Config(cfg.Log.Level, cfg.Log.Mode, os.Stdout)
	if cfg.Database.URL == "" {
		log.Error(ctx, "MISSION_DATABASE_URL is required to migrate")
		os.Exit(1)
	}

	if err := schema.Migrate(cfg.Database.URL); err != nil {
		log.Error(ctx, "error migrating database", "err", err)
		os.Exit(1)
	}

	log.Info(ctx, "migration done!")
}
