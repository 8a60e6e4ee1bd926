package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", true)

	log.Info().Msg("hidden")
	log.Warn().Str("probe", "ping").Msg("probe failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "probe failed") || !strings.Contains(out, "probe=ping") {
		t.Errorf("warn message missing fields: %q", out)
	}
}

func TestNewWithWriterBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "shout", true)

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, "debug") {
		t.Errorf("unknown level should fall back to info, got %q", out)
	}
	if !strings.Contains(out, "info") {
		t.Errorf("info message missing: %q", out)
	}
}

func TestNewNonTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Info().Msg("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal writer got ANSI colors: %q", buf.String())
	}
}
