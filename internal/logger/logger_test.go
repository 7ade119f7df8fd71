// ABOUTME: Tests for the zap logger wrapper.
// ABOUTME: Uses zap's observer core to assert emitted entries.
package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", mode, err)
		}
		l.Sync()
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	child := l.With("user_id", "abc")
	child.Info("exercise recorded", "minutes", 5)
	child.Warn("slow request")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "abc" {
		t.Errorf("user_id = %v", fields["user_id"])
	}
	if fields["minutes"] != int64(5) {
		t.Errorf("minutes = %v (%T)", fields["minutes"], fields["minutes"])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[1].Level)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Debug("ignored")
	l.Error("ignored", "k", "v")
}
