package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/models"
)

func sqliteConfig(path string) *config.Config {
	cfg := config.Defaults()
	cfg.Environment = config.Test
	cfg.DBPath = path
	return cfg
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "resep.db")
	db, err := Open(sqliteConfig(path))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.NoError(t, HealthCheck(context.Background(), db))

	assert.FileExists(t, path)
	assert.True(t, db.Migrator().HasTable(&models.FavoriteEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.UserProfile{}))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig(":memory:")
	cfg.DBDriver = "mysql"
	_, err := Open(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestReset(t *testing.T) {
	db, err := Open(sqliteConfig(":memory:"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	entry := models.NewFavoriteEntry(models.Recipe{ID: 7, Name: "Rendang", Category: models.CategoryFood})
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, Reset(db))
	var count int64
	require.NoError(t, db.Model(&models.FavoriteEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisHost = "127.0.0.1"
	cfg.RedisPort = "1"
	_, err := NewRedisClient(cfg)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
