package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("checkout completed")
	logger.Warn("check-in rejected", "member_id", 7)

	out := buf.String()
	if strings.Contains(out, "checkout completed") {
		t.Errorf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "check-in rejected") {
		t.Errorf("expected warn line, got %q", out)
	}
}
