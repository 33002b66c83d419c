// Package lattice provides a fluent API for extracting tables drawn with
// ruling lines from pages of positioned text and line segments.
//
// Basic usage:
//
//	found, err := lattice.FromDocument(doc).Tables(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	found, err := lattice.FromPages(pages...).
//	    Pages(1, 3).
//	    Concurrency(4).
//	    Logger(logger).
//	    Tables(ctx)
//
// The pipeline itself lives in the tables package; [ExtractPages] runs any
// [tables.Detector] over a slice of pages concurrently.
package lattice

import (
	"github.com/tsawler/lattice/model"
)

// FromDocument returns an Extractor over the pages of doc.
//
// Example:
//
//	md, err := lattice.FromDocument(doc).Markdown(ctx)
func FromDocument(doc *model.Document) *Extractor {
	if doc == nil {
		doc = model.NewDocument()
	}
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// FromPages returns an Extractor over pages. Page numbers are left as
// they are; selection with Pages and PageRange is by position.
func FromPages(pages ...*model.Page) *Extractor {
	return FromDocument(&model.Document{Pages: pages})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	found := lattice.Must(lattice.FromDocument(doc).Tables(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
