package writer

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Minimal raw-object layer: just enough typed values to serialize the
// dictionaries, arrays, and streams the document model produces.

type pdfObj interface {
	writeTo(b *bytes.Buffer)
}

type pdfName string

func (n pdfName) writeTo(b *bytes.Buffer) {
	b.WriteByte('/')
	b.WriteString(string(n))
}

type pdfInt int64

func (i pdfInt) writeTo(b *bytes.Buffer) {
	b.WriteString(strconv.FormatInt(int64(i), 10))
}

type pdfReal float64

func (r pdfReal) writeTo(b *bytes.Buffer) {
	b.WriteString(formatReal(float64(r)))
}

type pdfString []byte

func (s pdfString) writeTo(b *bytes.Buffer) {
	b.WriteByte('(')
	for _, c := range s {
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(')')
}

type pdfRef int // object number; generation is always 0

func (r pdfRef) writeTo(b *bytes.Buffer) {
	fmt.Fprintf(b, "%d 0 R", int(r))
}

type pdfArray []pdfObj

func (a pdfArray) writeTo(b *bytes.Buffer) {
	b.WriteByte('[')
	for i, item := range a {
		if i > 0 {
			b.WriteByte(' ')
		}
		item.writeTo(b)
	}
	b.WriteByte(']')
}

type pdfDict map[string]pdfObj

func (d pdfDict) writeTo(b *bytes.Buffer) {
	b.WriteString("<<")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('/')
		b.WriteString(k)
		b.WriteByte(' ')
		d[k].writeTo(b)
	}
	b.WriteString(">>")
}

type pdfStream struct {
	dict pdfDict
	data []byte
}

func (s *pdfStream) writeTo(b *bytes.Buffer) {
	s.dict["Length"] = pdfInt(len(s.data))
	s.dict.writeTo(b)
	b.WriteString("\nstream\n")
	b.Write(s.data)
	b.WriteString("\nendstream")
}

// formatReal renders a number the short way: integers without a fraction,
// fractions trimmed to at most five decimals.
func formatReal(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
