package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_BasicLogging(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	logger := NewFromZap(zap.New(core))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	logs := recorded.All()
	if len(logs) != 4 {
		t.Fatalf("Expected 4 logs, got %d", len(logs))
	}

	expectedLevels := []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
	}
	for i, log := range logs {
		if log.Level != expectedLevels[i] {
			t.Errorf("Log %d: expected level %v, got %v", i, expectedLevels[i], log.Level)
		}
	}
}

func TestZapLogger_StructuredFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := NewFromZap(zap.New(core))

	logger.Info("frame",
		F("path", "pano.jpg"),
		F("width", 4096),
		F("fov", float32(75)),
		F("capturing", true),
		F("elapsed", time.Second),
		Err(errors.New("boom")),
	)

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(logs))
	}
	ctx := logs[0].ContextMap()
	if ctx["path"] != "pano.jpg" {
		t.Errorf("Expected path='pano.jpg', got %v", ctx["path"])
	}
	if ctx["width"] != int64(4096) {
		t.Errorf("Expected width=4096, got %v", ctx["width"])
	}
	if ctx["capturing"] != true {
		t.Errorf("Expected capturing=true, got %v", ctx["capturing"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("Expected error='boom', got %v", ctx["error"])
	}
}

func TestZapLogger_With(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := NewFromZap(zap.New(core))

	logger.With(F("component", "sensor")).Info("listening")

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(logs))
	}
	if got := logs[0].ContextMap()["component"]; got != "sensor" {
		t.Errorf("Expected component='sensor', got %v", got)
	}
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	logger := NewFromZap(zap.New(core))

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	if n := recorded.Len(); n != 1 {
		t.Errorf("Expected 1 log at warn level, got %d", n)
	}
}

func TestNewZapLogger_InvalidLevelFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"

	l, err := NewZapLogger(cfg)
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if !l.zap.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info level to be enabled")
	}
	if l.zap.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug level to be disabled")
	}
}

func TestContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := NewFromZap(zap.New(core))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("from context")
	if recorded.Len() != 1 {
		t.Errorf("Expected logger from context to record, got %d logs", recorded.Len())
	}

	// no logger stored: must not panic
	FromContext(context.Background()).Info("nop")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLevel, "warn")
	t.Setenv(EnvFormat, "console")
	t.Setenv(EnvDev, "TRUE")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.Level != "warn" {
		t.Errorf("Expected level warn, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Expected format console, got %s", cfg.Format)
	}
	if !cfg.Development {
		t.Error("Expected development mode")
	}
}
