// Package builder provides a fluent API for assembling document pages from
// drawing primitives. It records content-stream operations; the writer
// package turns the result into PDF bytes.
package builder

import (
	"fmt"

	"classdeck/document"
	"classdeck/fonts"
)

// PDFBuilder accumulates pages into a document.
type PDFBuilder interface {
	NewPage(width, height float64) PageBuilder
	SetInfo(info *document.Info) PDFBuilder
	MeasureText(text string, size float64) float64
	Build() (*document.Document, error)
}

// PageBuilder draws onto a single page.
type PageBuilder interface {
	DrawText(text string, x, y float64, opts TextOptions) PageBuilder
	DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder
	DrawImage(img *document.Image, x, y, width, height float64) PageBuilder
	Finish() PDFBuilder
}

// TextOptions configures text drawing. The zero Color is black.
type TextOptions struct {
	FontSize float64
	Color    Color
}

// RectOptions configures rectangle drawing (stroke if neither flag is set).
type RectOptions struct {
	FillColor   Color
	StrokeColor Color
	LineWidth   float64
	Fill        bool
	Stroke      bool
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

const (
	fontResourceName = "F1"
	defaultFontSize  = 12
)

type builderImpl struct {
	pages        []*document.Page
	info         *document.Info
	metrics      *fonts.Metrics
	xobjectCount int
	xobjectNames map[*document.Image]string
}

type pageBuilderImpl struct {
	parent *builderImpl
	page   *document.Page
}

// NewBuilder constructs a PDFBuilder drawing with the Helvetica core font.
func NewBuilder() PDFBuilder {
	return &builderImpl{metrics: fonts.Helvetica}
}

func (b *builderImpl) NewPage(w, h float64) PageBuilder {
	p := &document.Page{MediaBox: document.Rectangle{URX: w, URY: h}}
	b.pages = append(b.pages, p)
	return &pageBuilderImpl{parent: b, page: p}
}

func (b *builderImpl) SetInfo(info *document.Info) PDFBuilder {
	b.info = info
	return b
}

// MeasureText returns the rendered width of text at size, in points.
func (b *builderImpl) MeasureText(text string, size float64) float64 {
	if size <= 0 {
		size = defaultFontSize
	}
	return b.metrics.Advance(text, size)
}

func (b *builderImpl) Build() (*document.Document, error) {
	for i, p := range b.pages {
		p.Index = i
	}
	return &document.Document{Pages: b.pages, Info: b.info}, nil
}

func (p *pageBuilderImpl) DrawText(text string, x, y float64, opts TextOptions) PageBuilder {
	res := p.ensureResources()
	if _, ok := res.Fonts[fontResourceName]; !ok {
		res.Fonts[fontResourceName] = &document.Font{BaseFont: p.parent.metrics.Name()}
	}
	size := opts.FontSize
	if size <= 0 {
		size = defaultFontSize
	}

	ops := p.ensureContentOps()
	*ops = append(*ops, document.Operation{Operator: "BT"})
	*ops = append(*ops, document.Operation{
		Operator: "Tf",
		Operands: []document.Operand{
			document.NameOperand{Value: fontResourceName},
			document.NumberOperand{Value: size},
		},
	})
	*ops = append(*ops, document.Operation{
		Operator: "Tm",
		Operands: []document.Operand{
			document.NumberOperand{Value: 1},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 1},
			document.NumberOperand{Value: x},
			document.NumberOperand{Value: y},
		},
	})
	*ops = append(*ops, document.Operation{Operator: "rg", Operands: colorOperands(opts.Color)})
	*ops = append(*ops, document.Operation{
		Operator: "Tj",
		Operands: []document.Operand{document.StringOperand{Value: fonts.Encode(text)}},
	})
	*ops = append(*ops, document.Operation{Operator: "ET"})
	return p
}

func (p *pageBuilderImpl) DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder {
	if !opts.Fill && !opts.Stroke {
		opts.Stroke = true
	}
	ops := p.ensureContentOps()
	*ops = append(*ops, document.Operation{Operator: "q"})
	if opts.Fill {
		*ops = append(*ops, document.Operation{Operator: "rg", Operands: colorOperands(opts.FillColor)})
	}
	if opts.Stroke {
		*ops = append(*ops, document.Operation{Operator: "RG", Operands: colorOperands(opts.StrokeColor)})
		if opts.LineWidth > 0 {
			*ops = append(*ops, document.Operation{
				Operator: "w",
				Operands: []document.Operand{document.NumberOperand{Value: opts.LineWidth}},
			})
		}
	}
	*ops = append(*ops, document.Operation{
		Operator: "re",
		Operands: []document.Operand{
			document.NumberOperand{Value: x},
			document.NumberOperand{Value: y},
			document.NumberOperand{Value: width},
			document.NumberOperand{Value: height},
		},
	})
	*ops = append(*ops, document.Operation{Operator: paintOperator(opts.Fill, opts.Stroke)})
	*ops = append(*ops, document.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) DrawImage(img *document.Image, x, y, width, height float64) PageBuilder {
	if img == nil {
		return p
	}
	res := p.ensureResources()
	name := p.parent.imageName(img)
	if _, ok := res.XObjects[name]; !ok {
		res.XObjects[name] = img
	}
	w := width
	if w == 0 {
		w = float64(img.Width)
	}
	h := height
	if h == 0 {
		h = float64(img.Height)
	}

	ops := p.ensureContentOps()
	*ops = append(*ops, document.Operation{Operator: "q"})
	*ops = append(*ops, document.Operation{
		Operator: "cm",
		Operands: []document.Operand{
			document.NumberOperand{Value: w},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: h},
			document.NumberOperand{Value: x},
			document.NumberOperand{Value: y},
		},
	})
	*ops = append(*ops, document.Operation{
		Operator: "Do",
		Operands: []document.Operand{document.NameOperand{Value: name}},
	})
	*ops = append(*ops, document.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) Finish() PDFBuilder { return p.parent }

func (b *builderImpl) imageName(img *document.Image) string {
	if b.xobjectNames == nil {
		b.xobjectNames = make(map[*document.Image]string)
	}
	if name, ok := b.xobjectNames[img]; ok {
		return name
	}
	b.xobjectCount++
	name := fmt.Sprintf("Im%d", b.xobjectCount)
	b.xobjectNames[img] = name
	return name
}

func (p *pageBuilderImpl) ensureResources() *document.Resources {
	if p.page.Resources == nil {
		p.page.Resources = &document.Resources{}
	}
	if p.page.Resources.Fonts == nil {
		p.page.Resources.Fonts = make(map[string]*document.Font)
	}
	if p.page.Resources.XObjects == nil {
		p.page.Resources.XObjects = make(map[string]*document.Image)
	}
	return p.page.Resources
}

func (p *pageBuilderImpl) ensureContentOps() *[]document.Operation {
	if len(p.page.Contents) == 0 {
		p.page.Contents = append(p.page.Contents, document.ContentStream{})
	}
	return &p.page.Contents[0].Operations
}

func colorOperands(c Color) []document.Operand {
	return []document.Operand{
		document.NumberOperand{Value: c.R},
		document.NumberOperand{Value: c.G},
		document.NumberOperand{Value: c.B},
	}
}

func paintOperator(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "B"
	case fill:
		return "f"
	default:
		return "S"
	}
}
