// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider selects the reasoning backend variant.
const (
	ProviderStub   = "stub"
	ProviderOpenAI = "openai"
)

// Config is the full configuration surface. Every field has a sane default
// so the binary runs against a local Redis with the stub backend out of
// the box.
type Config struct {
	RedisAddr     string `env:"SERENO_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"SERENO_REDIS_PASSWORD"`
	RedisDB       int    `env:"SERENO_REDIS_DB" envDefault:"0"`

	// SessionTTL bounds how long an unrefreshed session survives.
	SessionTTL time.Duration `env:"SERENO_SESSION_TTL" envDefault:"72h"`

	// HistoryLimit bounds the per-session conversation history.
	HistoryLimit int `env:"SERENO_HISTORY_LIMIT" envDefault:"10"`

	// MoodLimit is the default page size for mood history queries.
	MoodLimit int `env:"SERENO_MOOD_LIMIT" envDefault:"10"`

	// Provider selects the reasoning backend ("stub" or "openai").
	Provider        string        `env:"SERENO_PROVIDER" envDefault:"stub"`
	OpenAIAPIKey    string        `env:"SERENO_OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"SERENO_OPENAI_BASE_URL"`
	OpenAIModel     string        `env:"SERENO_OPENAI_MODEL"`
	ReasonerTimeout time.Duration `env:"SERENO_REASONER_TIMEOUT" envDefault:"5s"`

	// AutoDiagnose runs the diagnostic step immediately after a successful
	// emotion identification.
	AutoDiagnose bool `env:"SERENO_AUTO_DIAGNOSE" envDefault:"false"`

	HTTPPort string `env:"SERENO_HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"SERENO_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Provider != ProviderStub && cfg.Provider != ProviderOpenAI {
		return Config{}, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return cfg, nil
}
