package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	// PublicOrigin is the scheme+host used for share links. Empty means the
	// origin is derived from the incoming request.
	PublicOrigin string
	LogLevel     string

	// Remote recipe API
	RecipeAPIURL     string
	RecipeAPIKey     string
	RecipeAPITimeout time.Duration

	// Local database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration, optional
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Query cache
	StaleTime time.Duration
	CacheTime time.Duration
	CacheSize int

	// Avatar storage. An empty bucket keeps avatars inline in the database.
	AvatarBucket string
	AWSRegion    string

	// Favorite toggle rate limiting (needs redis)
	ToggleRateLimit  int
	ToggleRateWindow time.Duration
}

// fileConfig mirrors the optional TOML file named by CONFIG_FILE.
type fileConfig struct {
	Server struct {
		Host         string `toml:"host"`
		Port         string `toml:"port"`
		PublicOrigin string `toml:"public_origin"`
		LogLevel     string `toml:"log_level"`
	} `toml:"server"`
	API struct {
		URL     string `toml:"url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Database struct {
		Driver string `toml:"driver"`
		Path   string `toml:"path"`
		Host   string `toml:"host"`
		Port   string `toml:"port"`
		User   string `toml:"user"`
		Name   string `toml:"name"`
		SSL    string `toml:"ssl_mode"`
	} `toml:"database"`
	Redis struct {
		URL  string `toml:"url"`
		Host string `toml:"host"`
		Port string `toml:"port"`
		DB   int    `toml:"db"`
	} `toml:"redis"`
	Cache struct {
		StaleTime string `toml:"stale_time"`
		CacheTime string `toml:"cache_time"`
		Size      int    `toml:"size"`
	} `toml:"cache"`
	Avatar struct {
		Bucket string `toml:"bucket"`
		Region string `toml:"region"`
	} `toml:"avatar"`
	RateLimit struct {
		Limit  int    `toml:"limit"`
		Window string `toml:"window"`
	} `toml:"rate_limit"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Environment:      Development,
		ServerHost:       "0.0.0.0",
		ServerPort:       "8080",
		LogLevel:         "info",
		RecipeAPITimeout: 10 * time.Second,
		DBDriver:         "sqlite",
		DBPath:           filepath.Join("data", "resep.db"),
		DBSSLMode:        "disable",
		StaleTime:        2 * time.Minute,
		CacheTime:        5 * time.Minute,
		CacheSize:        256,
		ToggleRateLimit:  30,
		ToggleRateWindow: time.Minute,
	}
}

// LoadConfig creates a new Config instance with values from the config file,
// environment variables and secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Defaults()
	cfg.Environment = env

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	switch env {
	case CI:
		// CI uses environment variables only
	case Development, Test:
		// A missing .env is fine, the environment may already be populated
		_ = godotenv.Load()
	case Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if env != CI {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	setString(&cfg.ServerHost, fc.Server.Host)
	setString(&cfg.ServerPort, fc.Server.Port)
	setString(&cfg.PublicOrigin, fc.Server.PublicOrigin)
	setString(&cfg.LogLevel, fc.Server.LogLevel)
	setString(&cfg.RecipeAPIURL, fc.API.URL)
	setString(&cfg.DBDriver, fc.Database.Driver)
	setString(&cfg.DBPath, fc.Database.Path)
	setString(&cfg.DBHost, fc.Database.Host)
	setString(&cfg.DBPort, fc.Database.Port)
	setString(&cfg.DBUser, fc.Database.User)
	setString(&cfg.DBName, fc.Database.Name)
	setString(&cfg.DBSSLMode, fc.Database.SSL)
	setString(&cfg.RedisURL, fc.Redis.URL)
	setString(&cfg.RedisHost, fc.Redis.Host)
	setString(&cfg.RedisPort, fc.Redis.Port)
	setString(&cfg.AvatarBucket, fc.Avatar.Bucket)
	setString(&cfg.AWSRegion, fc.Avatar.Region)
	if fc.Redis.DB != 0 {
		cfg.RedisDB = fc.Redis.DB
	}
	if fc.Cache.Size > 0 {
		cfg.CacheSize = fc.Cache.Size
	}
	if fc.RateLimit.Limit > 0 {
		cfg.ToggleRateLimit = fc.RateLimit.Limit
	}

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{fc.API.Timeout, &cfg.RecipeAPITimeout},
		{fc.Cache.StaleTime, &cfg.StaleTime},
		{fc.Cache.CacheTime, &cfg.CacheTime},
		{fc.RateLimit.Window, &cfg.ToggleRateWindow},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.raw); err != nil {
			return err
		}
	}
	return nil
}

func loadEnv(cfg *Config) error {
	setString(&cfg.ServerHost, os.Getenv("SERVER_HOST"))
	setString(&cfg.ServerPort, os.Getenv("SERVER_PORT"))
	setString(&cfg.PublicOrigin, os.Getenv("PUBLIC_ORIGIN"))
	setString(&cfg.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&cfg.RecipeAPIURL, os.Getenv("RECIPE_API_URL"))
	setString(&cfg.RecipeAPIKey, os.Getenv("RECIPE_API_KEY"))
	setString(&cfg.DBDriver, os.Getenv("DB_DRIVER"))
	setString(&cfg.DBPath, os.Getenv("DB_PATH"))
	setString(&cfg.DBHost, os.Getenv("DB_HOST"))
	setString(&cfg.DBPort, os.Getenv("DB_PORT"))
	setString(&cfg.DBUser, os.Getenv("DB_USER"))
	setString(&cfg.DBPassword, os.Getenv("DB_PASSWORD"))
	setString(&cfg.DBName, os.Getenv("DB_NAME"))
	setString(&cfg.DBSSLMode, os.Getenv("DB_SSL_MODE"))
	setString(&cfg.RedisURL, os.Getenv("REDIS_URL"))
	setString(&cfg.RedisHost, os.Getenv("REDIS_HOST"))
	setString(&cfg.RedisPort, os.Getenv("REDIS_PORT"))
	setString(&cfg.RedisPassword, os.Getenv("REDIS_PASSWORD"))
	setString(&cfg.AvatarBucket, os.Getenv("AVATAR_BUCKET"))
	setString(&cfg.AWSRegion, os.Getenv("AWS_REGION"))

	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_SIZE %q: %w", v, err)
		}
		cfg.CacheSize = n
	}
	if v := os.Getenv("TOGGLE_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOGGLE_RATE_LIMIT %q: %w", v, err)
		}
		cfg.ToggleRateLimit = n
	}

	durations := map[string]*time.Duration{
		"RECIPE_API_TIMEOUT": &cfg.RecipeAPITimeout,
		"CACHE_STALE_TIME":   &cfg.StaleTime,
		"CACHE_TIME":         &cfg.CacheTime,
		"TOGGLE_RATE_WINDOW": &cfg.ToggleRateWindow,
	}
	for name, dst := range durations {
		if err := setDuration(dst, os.Getenv(name)); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// loadSecrets fills sensitive values from docker secrets when the
// environment did not provide them
func loadSecrets(cfg *Config) {
	if cfg.RecipeAPIKey == "" {
		cfg.RecipeAPIKey = readSecret("recipe_api_key")
	}
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
