package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("no-op logger accepts entries", zap.String("key", "value"))
}

func TestInitLevelRejectsUnknownLevel(t *testing.T) {
	if err := InitLevel("loud", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestInitLevelDebug(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	if err := InitLevel("debug", true); err != nil {
		t.Fatalf("InitLevel failed: %v", err)
	}
	if !Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}
