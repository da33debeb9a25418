// @title LMS Backend API
// @version 1.0
// @description Course catalogue, enrollment and quiz grading service.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"lms_backend/internal/app"
	"lms_backend/internal/config"
	"lms_backend/pkg/logger"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "migrate the database schema and exit")
	seed := flag.String("seed", "", "import a YAML course catalogue and exit")
	flag.Parse()

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg, *configDir)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	if *seed != "" {
		if err := application.Seed(context.Background(), *seed); err != nil {
			logger.Log.Fatal("Failed to import curriculum", zap.String("path", *seed), zap.Error(err))
		}
		return
	}

	application.Run()
}
