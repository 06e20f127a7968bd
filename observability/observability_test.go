package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTextLogger_FormatsLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf)
	log.Info("deck built", Int("pages", 3), String("output", "out.pdf"))
	log.Warn("annotate failed", Error("err", errors.New("boom")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "INFO deck built pages=3 output=out.pdf" {
		t.Fatalf("unexpected line: %q", lines[0])
	}
	if lines[1] != "WARN annotate failed err=boom" {
		t.Fatalf("unexpected line: %q", lines[1])
	}
}

func TestTextLogger_WithBindsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf).With(String("component", "stamp"))
	log.Debug("start")
	if got := buf.String(); got != "DEBUG start component=stamp\n" {
		t.Fatalf("unexpected output: %q", got)
	}

	// The parent logger is not mutated by With.
	buf.Reset()
	NewTextLogger(&buf).Info("plain")
	if got := buf.String(); got != "INFO plain\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNopLogger_SilentAndChainable(t *testing.T) {
	var log Logger = NopLogger{}
	log = log.With(String("k", "v"))
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
}
