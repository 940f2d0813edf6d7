package main

import (
	"github.com/bellapacxx/bingo-engine/config"
	"github.com/bellapacxx/bingo-engine/utils/logger"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		logger.Fatalf("DATABASE_URL is required to migrate")
	}
	if _, err := config.SetupDatabase(cfg.DatabaseURL); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}
	logger.Info("Database migration completed")
}
