// Package stamp retroactively applies the header-band overlay to existing
// multi-page PDFs. The input is never modified; each output is a new file
// under the destination directory carrying the input's base name.
//
// The overlay itself is rendered with classdeck's own builder and writer as
// a throwaway PDF whose pages mirror the input's page dimensions; pdfcpu
// then stamps it page-for-page on top of the input's content.
package stamp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"classdeck/builder"
	"classdeck/compose"
	"classdeck/observability"
	"classdeck/writer"
)

var (
	// ErrEmptyDocument rejects an input with no pages.
	ErrEmptyDocument = errors.New("document has no pages")
	// ErrInPlace rejects an output path that resolves to the input itself;
	// the input is never overwritten.
	ErrInPlace = errors.New("output would overwrite the input")
)

// Result records the outcome for one input of a batch.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Summary aggregates a batch run: per-item results plus counts for
// "succeeded out of attempted" reporting.
type Summary struct {
	Attempted int
	Succeeded int
	Results   []Result
}

// Annotate stamps the overlay onto every page of the document at inPath and
// writes the result to outDir under the input's base name. The output
// appears only after the whole document succeeded; the temporary overlay and
// output files are removed on every path.
func Annotate(ctx context.Context, inPath, outDir, overlay string, log observability.Logger) (string, error) {
	if log == nil {
		log = observability.NopLogger{}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, filepath.Base(inPath))
	if samePath(inPath, outPath) {
		return "", fmt.Errorf("%s: %w", inPath, ErrInPlace)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContextFile(inPath)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", inPath, err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		return "", fmt.Errorf("invalid document %s: %w", inPath, err)
	}
	count := pctx.PageCount
	if count == 0 {
		return "", fmt.Errorf("%s: %w", inPath, ErrEmptyDocument)
	}

	overlayPath, err := renderOverlay(ctx, pctx, count, overlay)
	if overlayPath != "" {
		defer os.Remove(overlayPath)
	}
	if err != nil {
		return "", err
	}

	wms := make(map[int]*model.Watermark, count)
	for i := 1; i <= count; i++ {
		wm, err := api.PDFWatermark(fmt.Sprintf("%s:%d", overlayPath, i),
			"scale:1 abs, pos:c, rot:0", true, false, types.POINTS)
		if err != nil {
			return "", fmt.Errorf("prepare overlay for page %d: %w", i, err)
		}
		wms[i] = wm
	}

	tmpOut, err := os.CreateTemp(outDir, ".classdeck-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	tmpName := tmpOut.Name()
	tmpOut.Close()
	defer os.Remove(tmpName)

	if err := api.AddWatermarksMapFile(inPath, tmpName, wms, conf); err != nil {
		return "", fmt.Errorf("stamp %s: %w", inPath, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("finalize output: %w", err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		return "", fmt.Errorf("finalize output: %w", err)
	}
	log.Info("document annotated",
		observability.String("input", inPath),
		observability.Int("pages", count))
	return outPath, nil
}

// AnnotateAll processes each input in order. One document's failure does not
// abort the batch; it is recorded and the remaining inputs still run.
func AnnotateAll(ctx context.Context, inputs []string, outDir, overlay string, log observability.Logger) Summary {
	if log == nil {
		log = observability.NopLogger{}
	}
	s := Summary{Attempted: len(inputs)}
	for _, in := range inputs {
		out, err := Annotate(ctx, in, outDir, overlay, log)
		if err != nil {
			log.Warn("annotate failed",
				observability.String("input", in),
				observability.Error("err", err))
		} else {
			s.Succeeded++
		}
		s.Results = append(s.Results, Result{Input: in, Output: out, Err: err})
	}
	return s
}

// renderOverlay writes a temporary PDF with one band-only page per input
// page, matching each input page's dimensions.
func renderOverlay(ctx context.Context, pctx *model.Context, count int, overlay string) (string, error) {
	b := builder.NewBuilder()
	for i := 1; i <= count; i++ {
		w, h := pageDims(pctx, i)
		page := b.NewPage(w, h)
		compose.DrawBand(page, w, h, i, count, overlay)
		page.Finish()
	}
	doc, err := b.Build()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "classdeck-overlay-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create overlay: %w", err)
	}
	werr := writer.NewWriter().Write(ctx, doc, f, writer.Config{Compress: true})
	cerr := f.Close()
	if werr != nil {
		return f.Name(), fmt.Errorf("write overlay: %w", werr)
	}
	if cerr != nil {
		return f.Name(), fmt.Errorf("write overlay: %w", cerr)
	}
	return f.Name(), nil
}

// samePath reports whether in and out name the same file. Paths are compared
// absolute, then by stat of the containing directories so symlinked
// destinations are caught too.
func samePath(in, out string) bool {
	inAbs, inErr := filepath.Abs(in)
	outAbs, outErr := filepath.Abs(out)
	if inErr == nil && outErr == nil && inAbs == outAbs {
		return true
	}
	if filepath.Base(in) != filepath.Base(out) {
		return false
	}
	inDir, err := os.Stat(filepath.Dir(in))
	if err != nil {
		return false
	}
	outDir, err := os.Stat(filepath.Dir(out))
	if err != nil {
		return false
	}
	return os.SameFile(inDir, outDir)
}

// pageDims reads a page's MediaBox, falling back to Letter when the
// dictionary does not resolve.
func pageDims(pctx *model.Context, pageNr int) (float64, float64) {
	_, _, attrs, err := pctx.PageDict(pageNr, false)
	if err != nil || attrs == nil || attrs.MediaBox == nil {
		return compose.PageWidth, compose.PageHeight
	}
	return attrs.MediaBox.Width(), attrs.MediaBox.Height()
}
