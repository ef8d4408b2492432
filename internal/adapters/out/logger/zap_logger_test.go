package logger

import (
	"testing"

	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapLoggerFrom(zap.New(core)), logs
}

func TestZapLogger_ModuleAndFields(t *testing.T) {
	base, logs := newObservedLogger(zapcore.DebugLevel)

	logger := base.WithModule("SlotGeneratorService").WithFields(out.LogFields{"clinicId": "c-1", "scope": "default"})
	logger.Info("slots.availability.done", out.LogFields{"available": 3, "scope": "event"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Message != "slots.availability.done" {
		t.Errorf("unexpected message: %s", entry.Message)
	}

	ctx := entry.ContextMap()
	if ctx["module"] != "SlotGeneratorService" {
		t.Errorf("expected module field, got %v", ctx["module"])
	}
	if ctx["clinicId"] != "c-1" {
		t.Errorf("expected default field clinicId, got %v", ctx["clinicId"])
	}
	if ctx["scope"] != "event" {
		t.Errorf("event fields must override defaults, got %v", ctx["scope"])
	}
}

func TestZapLogger_WithFieldsDoesNotLeak(t *testing.T) {
	base, logs := newObservedLogger(zapcore.DebugLevel)

	_ = base.WithFields(out.LogFields{"request": "a"})
	base.Debug("event", nil)

	ctx := logs.All()[0].ContextMap()
	if _, ok := ctx["request"]; ok {
		t.Error("fields of a derived logger leaked into its parent")
	}
	if ctx["module"] != unknownModule {
		t.Errorf("expected %q module, got %v", unknownModule, ctx["module"])
	}
}

func TestZapLogger_Levels(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.WarnLevel)

	logger.Debug("debug", nil)
	logger.Info("info", nil)
	logger.Warn("warn", nil)
	logger.Error("error", out.LogFields{"error": "boom"})

	if logs.Len() != 2 {
		t.Fatalf("expected warn and error only, got %d entries", logs.Len())
	}
	if logs.All()[1].Level != zapcore.ErrorLevel {
		t.Errorf("expected error level, got %s", logs.All()[1].Level)
	}
}

func TestNewZapLogger_InvalidLevel(t *testing.T) {
	if _, err := NewZapLogger("loud", "json", "UTC"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := NewZapLogger("debug", "console", "Europe/Moscow"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
