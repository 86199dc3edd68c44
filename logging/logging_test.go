package logging_test

import (
	"testing"

	"github.com/Adedunmol/questino/logging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ asynq.Logger = (*logging.AsynqLogger)(nil)

func TestNewParsesLevel(t *testing.T) {
	logger, err := logging.New("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = logging.New("warn", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = logging.New("loud", false)
	assert.Error(t, err)
}

func TestAsynqLoggerForwardsToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := logging.NewAsynqLogger(zap.New(core))

	adapter.Info("worker started")
	adapter.Warn("retrying ", "task")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "worker started", entries[0].Message)
	assert.Equal(t, "asynq", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "retrying task", entries[1].Message)
}
