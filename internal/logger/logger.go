package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the engine-wide logger. It discards everything until Init or InitLevel is called.
var Log *zap.Logger = zap.NewNop()

// Init sets up a production logger at info level
func Init() {
	if err := InitLevel("info", false); err != nil {
		fmt.Printf("logger init failed: %v\n", err)
	}
}

// InitLevel sets up the logger with the given level ("debug", "info", "warn", "error").
// Development mode switches to the console encoder with caller and stack traces on warnings.
func InitLevel(level string, development bool) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = log
	return nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = Log.Sync()
}
