// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DevelopmentSecret signs tokens when JWT_SECRET_KEY is unset outside production.
const DevelopmentSecret = "workshop-chat-development-secret"

type Config struct {
	ServerPort   string `envconfig:"SERVER_PORT" default:"8080"`
	Environment  string `envconfig:"ENV" default:"development"`
	JWTSecretKey string `envconfig:"JWT_SECRET_KEY"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"workshop_chat.db"`

	DefaultPageSize int `envconfig:"CHAT_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int `envconfig:"CHAT_MAX_PAGE_SIZE" default:"100"`

	SendRateWindow time.Duration `envconfig:"SEND_RATE_WINDOW" default:"1m"`
	SendRateMax    int           `envconfig:"SEND_RATE_MAX" default:"30"`
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	if !strings.EqualFold(os.Getenv("ENV"), "production") {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecretKey == "" {
		log.Println("JWT_SECRET_KEY not set; using the development secret")
		cfg.JWTSecretKey = DevelopmentSecret
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Validate() error {
	missing := []string{}
	if c.IsProduction() && c.JWTSecretKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if c.IsProduction() && strings.EqualFold(c.DBDriver, "postgres") && c.DatabaseDSN == "" {
		missing = append(missing, "DATABASE_DSN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required production environment variables: %v", missing)
	}

	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.SendRateWindow <= 0 || c.SendRateMax <= 0 {
		return fmt.Errorf("SEND_RATE_WINDOW and SEND_RATE_MAX must be positive")
	}
	return nil
}
