// Package config provides environment-based configuration for the server.
// godotenv is loaded at the entry point, so by the time Load runs the .env
// values are ordinary environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults for optional settings.
const (
	DefaultPort           = "5001"
	DefaultEmbeddingModel = "text-embedding-nomic-embed-text-v1.5"
	DefaultLLMModel       = "qwen2.5-32b-instruct"
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultModelCacheDir  = "/tmp/resume-builder"
)

// Config holds everything the server needs. DatabaseURL and the two service
// URLs are required; the rest have working defaults.
type Config struct {
	Port string `validate:"required"`

	DatabaseURL string `validate:"required"`

	EmbeddingURL   string `validate:"required,url"`
	EmbeddingModel string

	LLMProvider    string `validate:"oneof=local gemini"`
	LLMURL         string
	GeminiAPIKey   string
	DefaultModel   string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	StirlingURL   string `validate:"required,url"`
	ModelCacheDir string
}

// Load reads configuration from the environment and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envOr("PORT", DefaultPort),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		EmbeddingURL:   os.Getenv("EMBEDDING_URL"),
		EmbeddingModel: envOr("EMBEDDING_MODEL", DefaultEmbeddingModel),
		LLMProvider:    envOr("LLM_MODE", "local"),
		LLMURL:         os.Getenv("LLM_URL"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		DefaultModel:   envOr("LM_STUDIO_DEFAULT_MODEL", DefaultLLMModel),
		ConnectTimeout: envDuration("LLM_CONNECT_TIMEOUT", DefaultConnectTimeout),
		ReadTimeout:    envDuration("LLM_READ_TIMEOUT", DefaultReadTimeout),
		StirlingURL:    os.Getenv("STIRLING_PDF_URL"),
		ModelCacheDir:  envOr("MODEL_CACHE_DIR", DefaultModelCacheDir),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, including the cross-field provider
// requirements that struct tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.LLMProvider {
	case "local":
		if c.LLMURL == "" {
			return fmt.Errorf("invalid configuration: LLM_URL is required when LLM_MODE is local")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("invalid configuration: GEMINI_API_KEY is required when LLM_MODE is gemini")
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envDuration reads a timeout expressed in whole seconds, matching how the
// deployment environment has always configured these values.
func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
