package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "communities.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func TestOpen_MissingFileYieldsEmptyStore(t *testing.T) {
	s, path := tempStore(t)
	if s.Len() != 0 {
		t.Fatalf("fresh store has %d entries", s.Len())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open must not create the file")
	}
}

func TestStore_AddGetRoundTrip(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Add("maple", "Welcome to Maple Street"); err != nil {
		t.Fatalf("add: %v", err)
	}
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	desc, ok := reopened.Get("maple")
	if !ok || desc != "Welcome to Maple Street" {
		t.Fatalf("Get after reopen = %q, %v", desc, ok)
	}
}

func TestStore_AddDuplicateFails(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Add("maple", "one"); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := s.Add("maple", "two")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
	if desc, _ := s.Get("maple"); desc != "one" {
		t.Fatalf("failed add must not overwrite, got %q", desc)
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Update("ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: err = %v, want ErrNotFound", err)
	}
	if err := s.Add("maple", "one"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Update("maple", "two"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if desc, _ := s.Get("maple"); desc != "two" {
		t.Fatalf("update not applied: %q", desc)
	}
	if err := s.Delete("maple"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("store not empty after delete")
	}
}

func TestStore_ResolveFallback(t *testing.T) {
	s, _ := tempStore(t)
	if got := s.Resolve("unknown"); got != "No data for unknown" {
		t.Fatalf("Resolve fallback = %q", got)
	}
	if err := s.Add("maple", "Welcome"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Resolve("maple"); got != "Welcome" {
		t.Fatalf("Resolve known = %q", got)
	}
}

func TestStore_NamesSortedAndFileOrderStable(t *testing.T) {
	s, path := tempStore(t)
	for _, name := range []string{"oak", "maple", "birch"} {
		if err := s.Add(name, "street "+name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	names := s.Names()
	want := []string{"birch", "maple", "oak"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	text := string(data)
	if strings.Index(text, "birch") > strings.Index(text, "maple") ||
		strings.Index(text, "maple") > strings.Index(text, "oak") {
		t.Fatalf("file not sorted by key:\n%s", text)
	}
}

func TestOpen_MalformedFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communities.yaml")
	if err := os.WriteFile(path, []byte("[not, a, mapping]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
