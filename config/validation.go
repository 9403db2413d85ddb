package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirements lists the fields each environment must have set. Fields are
// named by their environment variable.
var requirements = map[Environment][]string{
	Development: {"RECIPE_API_URL"},
	Test:        {"RECIPE_API_URL"},
	CI:          {"RECIPE_API_URL"},
	Production:  {"RECIPE_API_URL", "PUBLIC_ORIGIN"},
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	values := map[string]string{
		"RECIPE_API_URL": cfg.RecipeAPIURL,
		"PUBLIC_ORIGIN":  cfg.PublicOrigin,
	}
	for _, name := range requirements[cfg.Environment] {
		if values[name] == "" {
			errs = append(errs, ValidationError{Field: name, Message: "required value is not set"}.Error())
		}
	}

	if cfg.RecipeAPIURL != "" {
		if u, err := url.Parse(cfg.RecipeAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: "RECIPE_API_URL", Message: "must be an absolute URL"}.Error())
		}
	}
	if cfg.PublicOrigin != "" {
		if u, err := url.Parse(cfg.PublicOrigin); err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") {
			errs = append(errs, ValidationError{Field: "PUBLIC_ORIGIN", Message: "must be scheme://host"}.Error())
		}
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{Field: "DB_PATH", Message: "required for sqlite"}.Error())
		}
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "DB_HOST and DB_NAME are required for postgres"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.StaleTime <= 0 || cfg.CacheTime < cfg.StaleTime {
		errs = append(errs, ValidationError{Field: "CACHE_TIME", Message: "stale time must be positive and not exceed cache time"}.Error())
	}
	if cfg.CacheSize <= 0 {
		errs = append(errs, ValidationError{Field: "CACHE_SIZE", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
