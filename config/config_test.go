package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("RECIPE_API_URL", "http://api.test")
	t.Setenv("PUBLIC_ORIGIN", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("CACHE_STALE_TIME", "")
	t.Setenv("CACHE_TIME", "")
	t.Setenv("RECIPE_API_KEY", "")
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_STALE_TIME", "30s")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "http://api.test", cfg.RecipeAPIURL)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.StaleTime)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, filepath.Join("data", "resep.db"), cfg.DBPath)
	assert.Equal(t, 2*time.Minute, cfg.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.CacheTime)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigFromFile(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("RECIPE_API_URL", "")
	t.Setenv("SERVER_PORT", "")

	path := filepath.Join(t.TempDir(), "resep.toml")
	content := `
[server]
port = "7070"

[api]
url = "https://recipes.example.com"
timeout = "3s"

[cache]
stale_time = "1m"
cache_time = "4m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, "https://recipes.example.com", cfg.RecipeAPIURL)
	assert.Equal(t, 3*time.Second, cfg.RecipeAPITimeout)
	assert.Equal(t, time.Minute, cfg.StaleTime)
	assert.Equal(t, 4*time.Minute, cfg.CacheTime)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	setBaseEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipe_api_key"), []byte("kid:abcd\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "kid:abcd", cfg.RecipeAPIKey)
}

func TestValidateConfig(t *testing.T) {
	t.Run("MissingAPIURL", func(t *testing.T) {
		cfg := Defaults()
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RECIPE_API_URL")
	})

	t.Run("ProductionNeedsOrigin", func(t *testing.T) {
		cfg := Defaults()
		cfg.Environment = Production
		cfg.RecipeAPIURL = "https://api.example.com"
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PUBLIC_ORIGIN")

		cfg.PublicOrigin = "https://resep.example.com"
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("OriginWithPath", func(t *testing.T) {
		cfg := Defaults()
		cfg.RecipeAPIURL = "https://api.example.com"
		cfg.PublicOrigin = "https://resep.example.com/app"
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("StaleLongerThanCache", func(t *testing.T) {
		cfg := Defaults()
		cfg.RecipeAPIURL = "https://api.example.com"
		cfg.StaleTime = 10 * time.Minute
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_TIME")
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := Defaults()
		cfg.RecipeAPIURL = "https://api.example.com"
		cfg.DBDriver = "mysql"
		assert.Error(t, ValidateConfig(cfg))
	})
}
