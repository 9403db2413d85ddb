package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/resep-nusantara/internal/models"
)

// tables lists every model owned by the local database
var tables = []interface{}{
	&models.FavoriteEntry{},
	&models.UserProfile{},
}

// Migrate creates or updates the local tables
func Migrate(db *gorm.DB) error {
	slog.Info("running auto-migration", slog.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops the local tables and migrates them again. All favorites and
// the profile are lost.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return Migrate(db)
}
