package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/infrastructure/config"
	"github.com/retailbooks/backend/internal/infrastructure/logger"
	"github.com/retailbooks/backend/internal/infrastructure/persistence"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "connect and validate config without migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if *dryRun {
		log.Info("dry run: database reachable, skipping migration",
			zap.String("database", cfg.Database.DBName))
		return
	}

	log.Info("running migrations", zap.String("database", cfg.Database.DBName))
	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations complete")
}
