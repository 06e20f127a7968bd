package stamp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"classdeck/builder"
	"classdeck/writer"
)

// writeInputPDF renders a plain multi-page document to serve as stamping
// input.
func writeInputPDF(t *testing.T, path string, pages int) {
	t.Helper()
	b := builder.NewBuilder()
	for i := 0; i < pages; i++ {
		b.NewPage(612, 792).
			DrawText("original content", 50, 400, builder.TextOptions{FontSize: 12}).
			Finish()
	}
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build input doc: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	defer f.Close()
	if err := writer.NewWriter().Write(context.Background(), doc, f, writer.Config{}); err != nil {
		t.Fatalf("write input: %v", err)
	}
}

func TestAnnotate_PreservesPageCount(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	writeInputPDF(t, in, 3)
	outDir := filepath.Join(dir, "annotated")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, err := Annotate(context.Background(), in, outDir, "Welcome to Maple Street", nil)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if out != filepath.Join(outDir, "report.pdf") {
		t.Fatalf("output path = %s", out)
	}

	pctx, err := api.ReadContextFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if pctx.PageCount != 3 {
		t.Fatalf("output has %d pages, want 3", pctx.PageCount)
	}

	// Input must be untouched.
	ictx, err := api.ReadContextFile(in)
	if err != nil {
		t.Fatalf("reread input: %v", err)
	}
	if ictx.PageCount != 3 {
		t.Fatalf("input was modified")
	}
}

func TestAnnotate_UnreadableInputFails(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(in, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Annotate(context.Background(), in, outDir, "text", nil); err == nil {
		t.Fatalf("expected error for corrupt input")
	}
	if _, err := os.Stat(filepath.Join(outDir, "broken.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no output may be produced for a failed input")
	}
}

func TestAnnotate_RefusesInPlaceOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	writeInputPDF(t, in, 2)
	before, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}

	// Destination directory is the input's own directory, so the output path
	// would be the input itself.
	if _, err := Annotate(context.Background(), in, dir, "overlay", nil); !errors.Is(err, ErrInPlace) {
		t.Fatalf("err = %v, want ErrInPlace", err)
	}
	after, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("reread input: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("input file was modified")
	}

	// The same directory reached through a symlink must be caught too.
	link := filepath.Join(t.TempDir(), "alias")
	if err := os.Symlink(dir, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if _, err := Annotate(context.Background(), in, link, "overlay", nil); !errors.Is(err, ErrInPlace) {
		t.Fatalf("err = %v, want ErrInPlace for symlinked directory", err)
	}
}

func TestAnnotateAll_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.pdf")
	good2 := filepath.Join(dir, "c.pdf")
	bad := filepath.Join(dir, "b.pdf")
	writeInputPDF(t, good1, 1)
	writeInputPDF(t, good2, 2)
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write bad input: %v", err)
	}
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := AnnotateAll(context.Background(), []string{good1, bad, good2}, outDir, "overlay", nil)
	if s.Attempted != 3 || s.Succeeded != 2 {
		t.Fatalf("summary = %d/%d, want 2/3", s.Succeeded, s.Attempted)
	}
	if len(s.Results) != 3 {
		t.Fatalf("got %d results", len(s.Results))
	}
	if s.Results[1].Input != bad || s.Results[1].Err == nil {
		t.Fatalf("failing input not identified: %+v", s.Results[1])
	}
	if s.Results[0].Err != nil || s.Results[2].Err != nil {
		t.Fatalf("good inputs must succeed: %+v", s.Results)
	}
	if _, err := os.Stat(filepath.Join(outDir, "b.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output produced for failed input")
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.pdf")); err != nil {
		t.Fatalf("missing output for good input: %v", err)
	}
}

func TestAnnotate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Annotate(ctx, "whatever.pdf", t.TempDir(), "x", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
