// Package document holds the output-side model: an ordered sequence of pages
// carrying content-stream operations and page-level resources. Pages are
// appended in build order and never reordered afterwards.
package document

// Rectangle is an axis-aligned box in PDF user space (points).
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

func (r Rectangle) Width() float64  { return r.URX - r.LLX }
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Document is the immutable output artifact of a build or annotate run.
type Document struct {
	Pages []*Page
	Info  *Info
}

// Info carries the document information dictionary fields.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Page is one output page. Index is assigned at build time.
type Page struct {
	Index     int
	MediaBox  Rectangle
	Resources *Resources
	Contents  []ContentStream
}

// ContentStream is an ordered run of drawing operations.
type ContentStream struct {
	Operations []Operation
}

// Operation is a single content-stream operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a content-stream operand value.
type Operand interface{ operand() }

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand() {}

type NameOperand struct{ Value string }

func (NameOperand) operand() {}

type StringOperand struct{ Value []byte }

func (StringOperand) operand() {}

type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand() {}

// Resources maps content-stream resource names to their definitions.
type Resources struct {
	Fonts    map[string]*Font
	XObjects map[string]*Image
}

// Font describes a standard-14 text font. Only non-embedded Type1 base fonts
// are supported; glyph metrics live in the fonts package.
type Font struct {
	BaseFont string
}

// Image is a raster image XObject. Data holds the already-encoded stream
// bytes; Filter names the encoding ("DCTDecode" for JPEG, empty for raw
// samples which the writer deflates).
type Image struct {
	Width            int
	Height           int
	ColorSpace       string // DeviceRGB or DeviceGray
	BitsPerComponent int
	Filter           string
	Data             []byte
}
