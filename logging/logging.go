package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the production JSON logger. verbose forces debug level and
// otherwise level is parsed from LOG_LEVEL style names.
func New(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// AsynqLogger adapts a zap logger to the asynq.Logger interface.
type AsynqLogger struct {
	sugar *zap.SugaredLogger
}

func NewAsynqLogger(logger *zap.Logger) *AsynqLogger {
	return &AsynqLogger{sugar: logger.Named("asynq").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *AsynqLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *AsynqLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *AsynqLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *AsynqLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *AsynqLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }
