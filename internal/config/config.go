// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env            string `envconfig:"ENV" default:"development"`
	ServerPort     string `envconfig:"PORT" default:"8001"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	// DB
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"` // postgres|sqlite
	DatabaseURL string `envconfig:"DATABASE_URL" default:"host=localhost port=5432 user=postgres password=postgres dbname=remindme sslmode=disable"`

	// Auth
	JWTSecret            string `envconfig:"JWT_SECRET_KEY" default:"your-secret-key"`
	JWTAlgorithm         string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	JWTExpirationMinutes int    `envconfig:"JWT_EXPIRATION_MINUTES" default:"43200"`

	// LLM
	LLMProvider     string        `envconfig:"LLM_PROVIDER" default:"gemini"` // gemini|openai
	LLMAPIKey       string        `envconfig:"LLM_API_KEY"`
	EmergentLLMKey  string        `envconfig:"EMERGENT_LLM_KEY"`
	LLMModel        string        `envconfig:"LLM_MODEL"`
	LLMBaseURL      string        `envconfig:"LLM_BASE_URL"`
	LLMTimeout      time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	MessageFallback string        `envconfig:"MESSAGE_FALLBACK" default:"generic"` // generic|occasion

	// SMTP (optional; email send stays a placeholder without it)
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPass     string `envconfig:"SMTP_PASS"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`
	SMTPFromName string `envconfig:"SMTP_FROM_NAME" default:"ReMindMe"`

	// Import archive (S3 / R2)
	ArchiveBucket          string `envconfig:"ARCHIVE_BUCKET"`
	ArchiveEndpoint        string `envconfig:"ARCHIVE_ENDPOINT"`
	ArchiveRegion          string `envconfig:"ARCHIVE_REGION" default:"auto"`
	ArchiveAccessKeyID     string `envconfig:"ARCHIVE_ACCESS_KEY_ID"`
	ArchiveSecretAccessKey string `envconfig:"ARCHIVE_SECRET_ACCESS_KEY"`
}

// Load reads an optional .env (outside production) and decodes the environment.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToUpper(c.JWTAlgorithm) {
	case "HS256", "HS384", "HS512":
		c.JWTAlgorithm = strings.ToUpper(c.JWTAlgorithm)
	default:
		return fmt.Errorf("unsupported JWT_ALGORITHM %q (want HS256, HS384 or HS512)", c.JWTAlgorithm)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.JWTExpirationMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive, got %d", c.JWTExpirationMinutes)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.LLMProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	switch c.MessageFallback {
	case "generic", "occasion":
	default:
		return fmt.Errorf("unsupported MESSAGE_FALLBACK %q", c.MessageFallback)
	}
	return nil
}

// LLMKey returns the provider credential, preferring LLM_API_KEY.
func (c *Config) LLMKey() string {
	if c.LLMAPIKey != "" {
		return c.LLMAPIKey
	}
	return c.EmergentLLMKey
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationMinutes) * time.Minute
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveBucket != "" && c.ArchiveAccessKeyID != "" && c.ArchiveSecretAccessKey != ""
}
