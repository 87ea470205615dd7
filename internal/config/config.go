package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Credential for the generative-language model. Required unless the
	// mock client is selected; checked in Validate so a missing key fails
	// at startup, not on the first chat request.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	ModelName  string `env:"CHATDESK_MODEL_NAME" envDefault:"gemini-2.5-flash"`
	UseMockLLM bool   `env:"CHATDESK_USE_MOCK_LLM"`

	// "memory", "postgres" or "firestore".
	StorageBackend string `env:"CHATDESK_STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`
	GCPProjectID   string `env:"CHATDESK_GCP_PROJECT"`

	// Deployment constants, not protocol constants.
	MaxMessageLen   int           `env:"CHATDESK_MAX_MESSAGE_LEN" envDefault:"4000"`
	HistoryWindow   int           `env:"CHATDESK_HISTORY_WINDOW" envDefault:"10"`
	GenerateTimeout time.Duration `env:"CHATDESK_GENERATE_TIMEOUT" envDefault:"30s"`

	LogLevel string `env:"CHATDESK_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the cross-field requirements that env tags cannot
// express: each selected backend pulls in its own mandatory settings.
func (c *Config) Validate() error {
	if !c.UseMockLLM && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set unless CHATDESK_USE_MOCK_LLM is enabled")
	}

	switch c.StorageBackend {
	case "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres storage backend")
		}
	case "firestore":
		if c.GCPProjectID == "" {
			return fmt.Errorf("CHATDESK_GCP_PROJECT must be set for the firestore storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.MaxMessageLen <= 0 {
		return fmt.Errorf("CHATDESK_MAX_MESSAGE_LEN must be positive")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("CHATDESK_HISTORY_WINDOW must be positive")
	}
	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("CHATDESK_GENERATE_TIMEOUT must be positive")
	}
	return nil
}
