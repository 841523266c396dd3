package config

import (
	"fmt"
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

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
	case "sqlite":
		require("DB_PATH", cfg.DBPath)
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	// Sensitive values must be provided outside development
	if cfg.Environment == Production || cfg.Environment == CI {
		require("JWT_SECRET", cfg.JWTSecret)
		if cfg.JWTSecret == DevelopmentJWTSecret {
			errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must not use the development default"})
		}
		if cfg.DBDriver == "postgres" {
			require("DB_PASSWORD", cfg.DBPassword)
		}
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{Field: "SESSION_TTL", Message: "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}
	if cfg.RateLimitCreate < 0 || cfg.RateLimitModify < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
