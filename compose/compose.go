// Package compose builds paginated documents from image decks: one page per
// image, optionally with a community-text overlay in a reserved header band.
package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"classdeck/builder"
	"classdeck/document"
	"classdeck/fonts"
	"classdeck/layout"
	"classdeck/observability"
	"classdeck/writer"
)

// Variant selects the page composition mode.
type Variant int

const (
	// HeaderBand reserves a band at the top of each page for the overlay
	// text and page caption; the image fills the area below it.
	HeaderBand Variant = iota
	// FullBleed centers the image on the whole page; no band, no text.
	FullBleed
)

// ErrNoImages rejects a build with an empty deck before any drawing begins.
var ErrNoImages = errors.New("no images to process")

// Deck is an ordered set of images to be built into one document. Order is
// meaningful: it defines page order.
type Deck struct {
	Images  []string
	Overlay string
	Variant Variant
	Logger  observability.Logger
}

func (d *Deck) logger() observability.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return observability.NopLogger{}
}

// MoveUp swaps the image at i with its predecessor.
func (d *Deck) MoveUp(i int) error {
	if i <= 0 || i >= len(d.Images) {
		return fmt.Errorf("cannot move image %d up in a deck of %d", i, len(d.Images))
	}
	d.Images[i-1], d.Images[i] = d.Images[i], d.Images[i-1]
	return nil
}

// MoveDown swaps the image at i with its successor.
func (d *Deck) MoveDown(i int) error {
	if i < 0 || i >= len(d.Images)-1 {
		return fmt.Errorf("cannot move image %d down in a deck of %d", i, len(d.Images))
	}
	d.Images[i], d.Images[i+1] = d.Images[i+1], d.Images[i]
	return nil
}

// Build composes one page per image, in deck order, and returns the
// completed document. It aborts on the first image that cannot be opened or
// decoded; no partial document is returned.
func (d *Deck) Build(ctx context.Context) (*document.Document, error) {
	if len(d.Images) == 0 {
		return nil, ErrNoImages
	}
	log := d.logger()

	b := builder.NewBuilder()
	b.SetInfo(&document.Info{Producer: "classdeck"})
	for i, path := range d.Images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := builder.ImageFromFile(path)
		if err != nil {
			return nil, err
		}
		page := b.NewPage(PageWidth, PageHeight)
		composePage(page, i+1, len(d.Images), img, d.Overlay, d.Variant)
		page.Finish()
		log.Debug("page composed",
			observability.Int("page", i+1),
			observability.String("image", path))
	}
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	log.Info("deck built", observability.Int("pages", len(doc.Pages)))
	return doc, nil
}

// WriteFile builds the deck and writes the document to path. The write is
// atomic: bytes go to a temporary file in the destination directory which is
// renamed into place only after every page succeeded, and removed on any
// failure.
func (d *Deck) WriteFile(ctx context.Context, path string) error {
	doc, err := d.Build(ctx)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".classdeck-*.pdf")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	werr := writer.NewWriter().Write(ctx, doc, tmp, writer.Config{Compress: true})
	cerr := tmp.Close()
	if werr != nil {
		return fmt.Errorf("write document: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("write document: %w", cerr)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	d.logger().Info("document written", observability.String("path", path))
	return nil
}

// composePage draws one page: in the header-band variant an opaque white
// band with the wrapped overlay text and a "Page i of N" caption above a
// bottom-anchored image; in the full-bleed variant just the centered image.
func composePage(page builder.PageBuilder, index, count int, img *document.Image, overlay string, variant Variant) {
	if variant == FullBleed {
		p := Fit(img.Width, img.Height, fullPageArea(), AnchorCenter)
		page.DrawImage(img, p.X, p.Y, p.Width, p.Height)
		return
	}

	DrawBand(page, PageWidth, PageHeight, index, count, overlay)

	p := Fit(img.Width, img.Height, bandImageArea(), AnchorBottom)
	page.DrawImage(img, p.X, p.Y, p.Width, p.Height)
}

// DrawBand draws the header band onto a page of the given dimensions: an
// opaque white strip across the full width, the wrapped overlay text, and a
// "Page i of N" caption. The stamp pipeline reuses it for existing
// documents, where the caption counts the input's own pages.
func DrawBand(page builder.PageBuilder, pageWidth, pageHeight float64, index, count int, overlay string) {
	page.DrawRectangle(0, pageHeight-BandHeight, pageWidth, BandHeight, builder.RectOptions{
		Fill:      true,
		FillColor: builder.Color{R: 1, G: 1, B: 1},
	})
	lines := layout.Wrap(overlay, pageWidth-2*TextLeftMargin, fonts.Helvetica, BodyFontSize)
	y := pageHeight - TextTopOffset
	for _, line := range lines {
		if line.Gap {
			y -= GapPitch
			continue
		}
		page.DrawText(line.Text, TextLeftMargin, y, builder.TextOptions{FontSize: BodyFontSize})
		y -= LinePitch
	}
	page.DrawText(fmt.Sprintf("Page %d of %d", index, count),
		pageWidth-CaptionRightOffset, pageHeight-CaptionTopOffset,
		builder.TextOptions{FontSize: CaptionFontSize})
}
