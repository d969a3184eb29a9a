// Package config loads environment configuration for the service.
package config

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// BackendWSURL is substituted into the demo chat page so the browser
	// knows where to open its websocket.
	BackendWSURL string `env:"BACKEND_URL_WS" default:"ws://localhost:8080"`

	// TemplateDir holds the HTML assets served by the demo endpoints.
	TemplateDir string `env:"TEMPLATE_DIR" default:"web"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BackendWSURL)
	if err != nil {
		return fmt.Errorf("BACKEND_URL_WS must be a valid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("BACKEND_URL_WS must use ws or wss scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("BACKEND_URL_WS must include a host")
	}

	if cfg.TemplateDir == "" {
		return fmt.Errorf("TEMPLATE_DIR must not be empty")
	}

	return nil
}
