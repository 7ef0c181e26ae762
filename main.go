// @title GrowthPath API
// @version 1.0
// @description Backend for the GrowthPath assessment platform: AI-interview assessments, assessment plans and aggregated final reports.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"growthpath_backend/internal/app"
	"growthpath_backend/internal/config"
	"growthpath_backend/pkg/configwatcher"
	"growthpath_backend/pkg/logger"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	// hot-reload the report taxonomy and other tunables on config edits
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(c)
			logger.Log.Info("Configuration reloaded")
		}
	})

	application.Run()
}
