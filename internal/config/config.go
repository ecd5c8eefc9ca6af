// Package config
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Address            string        `validate:"required,hostname_port"`
	MinRefreshInterval time.Duration `validate:"required,min=1ms"`
	HealthWindow       time.Duration `validate:"required,min=1s"`
	BroadcastInterval  time.Duration `validate:"required,min=100ms"`
	LogLevel           string        `validate:"oneof=debug info warn error"`
	LogFormat          string        `validate:"oneof=text json"`
	AllowedOrigins     []string
}

var validate = validator.New()

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Address:            envOr("HTTP_ADDR", "127.0.0.1:9755"),
		MinRefreshInterval: durationOr("MIN_REFRESH_INTERVAL", 500*time.Millisecond),
		HealthWindow:       durationOr("HEALTH_WINDOW", 5*time.Second),
		BroadcastInterval:  durationOr("BROADCAST_INTERVAL", time.Second),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "text"),
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
