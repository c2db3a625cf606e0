package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for level, want := range tests {
		l, err := New(level)
		if err != nil {
			t.Fatalf("New(%q) error = %v", level, err)
		}
		if !l.Core().Enabled(want) {
			t.Errorf("New(%q) should enable %v", level, want)
		}
		if want > zapcore.DebugLevel && l.Core().Enabled(want-1) {
			t.Errorf("New(%q) should not enable %v", level, want-1)
		}
	}
}
