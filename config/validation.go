package config

import (
	"errors"
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

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error
	env := cfg.Environment()

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if env.RequiresSecrets() {
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret is required"})
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret is required"})
		}
		if cfg.DBDriver == "sqlite" && env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 && env == Production {
		errs = append(errs, ValidationError{"JWT_SECRET", "must be at least 16 characters"})
	}

	if cfg.GenerateRateLimit <= 0 {
		errs = append(errs, ValidationError{"GENERATE_RATE_LIMIT", "must be positive"})
	}
	if cfg.GenerateRateWindow <= 0 {
		errs = append(errs, ValidationError{"GENERATE_RATE_WINDOW", "must be positive"})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, ValidationError{"LOG_FORMAT", "must be json or text"})
	}

	if (cfg.TelegramBotToken == "") != (cfg.TelegramChatID == "") {
		errs = append(errs, ValidationError{"TELEGRAM_REPORT_CHAT_ID", "bot token and chat id must be set together"})
	}

	return errors.Join(errs...)
}
