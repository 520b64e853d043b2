package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))

	log.WarnObj("feed failed", "feed_error", map[string]any{"feed_id": "decrypt-latest"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel || entry.Message != "feed failed" {
		t.Fatalf("unexpected entry %#v", entry.Entry)
	}
	field, ok := entry.ContextMap()["feed_error"].(map[string]any)
	if !ok || field["feed_id"] != "decrypt-latest" {
		t.Fatalf("unexpected field %#v", entry.ContextMap())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNopLoggerSatisfiesLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.InfoObj("ignored", "k", nil)
}
