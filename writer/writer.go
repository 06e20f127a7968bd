// Package writer serializes a document.Document into a PDF byte stream:
// header, indirect objects, cross-reference table, and trailer.
package writer

import (
	"context"
	"io"

	"classdeck/document"
)

// Config controls serialization.
type Config struct {
	// Compress deflates content streams. Image streams keep their own
	// encoding either way.
	Compress bool
}

// Writer turns a document into PDF bytes.
type Writer interface {
	Write(ctx context.Context, doc *document.Document, w io.Writer, cfg Config) error
}

// NewWriter constructs a Writer.
func NewWriter() Writer { return &impl{} }
