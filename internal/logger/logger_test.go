package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")

	if got := RequestID(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}

func TestWithRequestIDAddsField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithRequestID(ctx, base).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("expected request_id field req-42, got %v", got)
	}
}

func TestWithRequestIDNilBase(t *testing.T) {
	if WithRequestID(context.Background(), nil) == nil {
		t.Error("expected a no-op logger for nil base")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	l := New(Config{Level: "shouting", Encoding: "console"})
	if l.Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug to be disabled on fallback level")
	}
	if !l.Core().Enabled(zap.InfoLevel) {
		t.Error("expected info to be enabled on fallback level")
	}
}
