package config_test

import (
	"testing"
	"time"

	"github.com/Adedunmol/questino/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := config.FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.NLUMinTextLength)
	assert.Equal(t, time.Second, cfg.AnalysisPollInterval)
	assert.Equal(t, 15*time.Second, cfg.AnalysisPollTimeout)
	assert.Equal(t, 10*time.Second, cfg.NLUTimeout)
	assert.Equal(t, 5, cfg.WorkerConcurrency)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := config.FromEnv(envOf(map[string]string{
		"PORT":                   "9000",
		"NLU_MIN_TEXT_LENGTH":    "12",
		"ANALYSIS_POLL_INTERVAL": "250ms",
		"ANALYSIS_POLL_TIMEOUT":  "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 12, cfg.NLUMinTextLength)
	assert.Equal(t, 250*time.Millisecond, cfg.AnalysisPollInterval)
	assert.Equal(t, 3*time.Second, cfg.AnalysisPollTimeout)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	_, err := config.FromEnv(envOf(map[string]string{"NLU_TIMEOUT": "ten seconds"}))
	assert.Error(t, err)

	_, err = config.FromEnv(envOf(map[string]string{"WORKER_CONCURRENCY": "many"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Config{DatabaseURL: "postgres://x", RedisURL: "redis://y"}
	assert.Error(t, cfg.Validate())

	cfg.SecretKey = "s3cret"
	assert.NoError(t, cfg.Validate())
}
