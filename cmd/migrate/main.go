package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/database"
	"github.com/pageza/resep-nusantara/internal/logging"
)

func main() {
	// Parse command line flags
	reset := flag.Bool("reset", false, "Drop the local tables before migrating. Favorites and the profile are lost.")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.Setup(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if *reset {
		if err := database.Reset(db); err != nil {
			logger.Error("reset failed", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println("Local tables dropped and recreated.")
		return
	}

	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Println("All migrations applied successfully.")
}
