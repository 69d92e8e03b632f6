package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"opply/internal/config"
	"opply/internal/infrastructure/logger"
	"opply/internal/infrastructure/mysql"
	"opply/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		zapLogger.Fatal("running migrations", zap.Error(err))
	}

	if err := seed.NewSeeder(db, zapLogger).Run(context.Background()); err != nil {
		zapLogger.Fatal("seeding database", zap.Error(err))
	}
}
