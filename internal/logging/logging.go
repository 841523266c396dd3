// Package logging builds the zap loggers shared by the server and CLIs.
package logging

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger at the given level. Development mode uses the
// human-readable console encoder; otherwise JSON is written.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

// Must is New for main packages; it falls back to a production logger.
func Must(level string, development bool) *zap.Logger {
	logger, err := New(level, development)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Warn("Falling back to default logger", zap.Error(err))
		return fallback
	}
	return logger
}

// StdLog adapts logger for libraries that expect a *log.Logger.
func StdLog(logger *zap.Logger) *log.Logger {
	return zap.NewStdLog(logger.WithOptions(zap.AddCallerSkip(1)))
}
