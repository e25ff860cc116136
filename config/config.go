package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env string `env:"ENV" env-default:"development"`

	// Server configuration
	ServerPort      string        `env:"SERVER_PORT" env-default:"8080"`
	ServerHost      string        `env:"SERVER_HOST" env-default:"0.0.0.0"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// Database configuration
	DBDriver      string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost        string `env:"DB_HOST" env-default:"localhost"`
	DBPort        string `env:"DB_PORT" env-default:"5432"`
	DBUser        string `env:"DB_USER" env-default:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" env-default:"course"`
	DBSSLMode     string `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath    string `env:"SQLITE_PATH" env-default:"course.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"migrations"`

	// Redis configuration
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisURL      string `env:"REDIS_URL"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"720h"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"https://web.telegram.org,http://localhost:5173"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	// Meal plan generation
	GeneratorURL       string        `env:"GENERATOR_URL"`
	GeneratorAPIKey    string        `env:"GENERATOR_API_KEY"`
	GeneratorTimeout   time.Duration `env:"GENERATOR_TIMEOUT" env-default:"60s"`
	GenerateRateLimit  int           `env:"GENERATE_RATE_LIMIT" env-default:"5"`
	GenerateRateWindow time.Duration `env:"GENERATE_RATE_WINDOW" env-default:"1h"`

	// Plan export
	S3BucketName string `env:"S3_BUCKET_NAME"`
	S3Endpoint   string `env:"S3_ENDPOINT"`
	AWSRegion    string `env:"AWS_REGION" env-default:"eu-central-1"`

	// Error reporting chat
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_REPORT_CHAT_ID"`
}

// LoadConfig reads an optional .env file, then the environment, then Docker
// secrets for any sensitive value still unset.
func LoadConfig() (*Config, error) {
	if GetEnvironment() == Development {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applySecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Environment returns the parsed runtime environment of this config.
func (c *Config) Environment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(c.Env)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the connection string for lib/pq and the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func applySecrets(cfg *Config) {
	overlay := []struct {
		name  string
		value *string
	}{
		{"db_password", &cfg.DBPassword},
		{"jwt_secret", &cfg.JWTSecret},
		{"redis_password", &cfg.RedisPassword},
		{"telegram_bot_token", &cfg.TelegramBotToken},
		{"generator_api_key", &cfg.GeneratorAPIKey},
	}
	for _, s := range overlay {
		if *s.value == "" {
			*s.value = readSecret(s.name)
		}
	}
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
