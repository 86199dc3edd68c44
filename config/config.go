package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	SecretKey     string
	PublicBaseURL string

	WatsonAPIKey     string
	WatsonURL        string
	NLUMinTextLength int
	NLUTimeout       time.Duration

	AnalysisPollInterval time.Duration
	AnalysisPollTimeout  time.Duration

	GoogleClientID string
	GeminiAPIKey   string
	GeminiModel    string

	LogLevel          string
	WorkerConcurrency int
}

// Load reads .env when present and then the process environment.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv as the variable source.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:           stringOr(getenv("PORT"), "8080"),
		DatabaseURL:    getenv("DATABASE_URL"),
		RedisURL:       getenv("REDIS_URL"),
		SecretKey:      getenv("SECRET_KEY"),
		PublicBaseURL:  stringOr(getenv("PUBLIC_BASE_URL"), "http://localhost:5173"),
		WatsonAPIKey:   getenv("WATSON_API_KEY"),
		WatsonURL:      getenv("WATSON_URL"),
		GoogleClientID: getenv("GOOGLE_CLIENT_ID"),
		GeminiAPIKey:   getenv("GEMINI_API_KEY"),
		GeminiModel:    stringOr(getenv("GEMINI_MODEL"), "gemini-2.0-flash"),
		LogLevel:       stringOr(getenv("LOG_LEVEL"), "info"),
	}

	var err error
	if cfg.NLUMinTextLength, err = intOr(getenv, "NLU_MIN_TEXT_LENGTH", 8); err != nil {
		return Config{}, err
	}
	if cfg.WorkerConcurrency, err = intOr(getenv, "WORKER_CONCURRENCY", 5); err != nil {
		return Config{}, err
	}
	if cfg.NLUTimeout, err = durationOr(getenv, "NLU_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AnalysisPollInterval, err = durationOr(getenv, "ANALYSIS_POLL_INTERVAL", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AnalysisPollTimeout, err = durationOr(getenv, "ANALYSIS_POLL_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings every long running command depends on.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL environment variable not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY environment variable not set")
	}
	return nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func durationOr(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
