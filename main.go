// @title QuizHub API
// @version 1.0
// @description Backend for the QuizHub online quiz platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"quizhub_backend/internal/app"
	"quizhub_backend/internal/config"
	"quizhub_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup, even in release mode")
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

	application.Run()
}
