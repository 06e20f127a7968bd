package layout

import (
	"reflect"
	"strings"
	"testing"

	"classdeck/fonts"
)

func TestWrap_EveryLineFitsMaxWidth(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog and keeps on running " +
		"through fields of wheat until the sun goes down behind the hills"
	const maxWidth = 150.0
	lines := Wrap(text, maxWidth, fonts.Helvetica, 12)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.Gap {
			t.Fatalf("unexpected gap marker in single-paragraph input")
		}
		if w := fonts.Helvetica.Advance(line.Text, 12); w > maxWidth {
			t.Fatalf("line %q measures %v, exceeds %v", line.Text, w, maxWidth)
		}
	}
}

func TestWrap_Deterministic(t *testing.T) {
	text := "alpha beta gamma\n\ndelta epsilon zeta eta theta"
	a := Wrap(text, 90, fonts.Helvetica, 12)
	b := Wrap(text, 90, fonts.Helvetica, 12)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical calls diverged: %+v vs %+v", a, b)
	}
}

func TestWrap_BlankLineBecomesGap(t *testing.T) {
	lines := Wrap("A\n\nB", 592, fonts.Helvetica, 12)
	if len(lines) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(lines), lines)
	}
	if lines[0].Text != "A" || lines[0].Gap {
		t.Fatalf("first entry = %+v, want line A", lines[0])
	}
	if !lines[1].Gap {
		t.Fatalf("middle entry is not a gap: %+v", lines[1])
	}
	if lines[2].Text != "B" || lines[2].Gap {
		t.Fatalf("last entry = %+v, want line B", lines[2])
	}
}

func TestWrap_OversizedWordKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 200)
	lines := Wrap("a "+long+" b", 100, fonts.Helvetica, 12)
	found := false
	for _, line := range lines {
		if line.Text == long {
			found = true
		}
	}
	if !found {
		t.Fatalf("oversized word was split or dropped: %+v", lines)
	}
}

func TestWrap_AccentedTextMeasured(t *testing.T) {
	text := "Bienvenue à la fête de l'école élémentaire près du château"
	const maxWidth = 120.0
	lines := Wrap(text, maxWidth, fonts.Helvetica, 12)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d lines", len(lines))
	}
	for _, line := range lines {
		if w := fonts.Helvetica.Advance(line.Text, 12); w > maxWidth {
			t.Fatalf("line %q measures %v, exceeds %v", line.Text, w, maxWidth)
		}
	}
}

func TestWrap_ShortOverlaySingleLine(t *testing.T) {
	lines := Wrap("Welcome to Maple Street", 592, fonts.Helvetica, 12)
	if len(lines) != 1 || lines[0].Text != "Welcome to Maple Street" {
		t.Fatalf("expected a single line, got %+v", lines)
	}
}
