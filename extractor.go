package lattice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/tables"
)

// Extractor provides a fluent interface for extracting tables from a
// document. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	doc     *model.Document
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		doc:     e.doc,
		options: e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	found, err := lattice.FromDocument(doc).Pages(1, 3, 5).Tables(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Detector replaces the lattice detector with d.
//
// Example:
//
//	det := tables.NewLatticeDetector().WithMaxGapHorizontal(4)
//	found, err := lattice.FromDocument(doc).Detector(det).Tables(ctx)
func (e *Extractor) Detector(d tables.Detector) *Extractor {
	newExt := e.clone()
	newExt.options.detector = d
	return newExt
}

// Concurrency limits how many pages are processed at once. Values below
// one mean no limit.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// Logger sets the logger used by the extractor and its default detector.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Methods
// ============================================================================

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() int {
	return e.doc.PageCount()
}

// PageTables returns the tables of each selected page, in page order.
func (e *Extractor) PageTables(ctx context.Context) ([][]*model.Table, error) {
	pages, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	found, err := ExtractPages(ctx, e.detector(), pages, e.options.concurrency)
	if err != nil {
		return nil, err
	}

	for i, page := range pages {
		e.log().Debug("extracted page", "page", page.Number, "tables", len(found[i]))
	}
	return found, nil
}

// Tables returns the tables of all selected pages, in page order and in
// reading order within a page.
func (e *Extractor) Tables(ctx context.Context) ([]*model.Table, error) {
	perPage, err := e.PageTables(ctx)
	if err != nil {
		return nil, err
	}

	var all []*model.Table
	for _, found := range perPage {
		all = append(all, found...)
	}
	return all, nil
}

// Tabularity scores each selected page. The configured detector is used
// when it is a lattice detector; otherwise a default one is.
func (e *Extractor) Tabularity(ctx context.Context) ([]tables.TabularityScore, error) {
	pages, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	det, ok := e.options.detector.(*tables.LatticeDetector)
	if !ok {
		det = tables.NewLatticeDetector().WithLogger(e.log())
	}

	return forEachPage(ctx, pages, e.options.concurrency, func(page *model.Page) (tables.TabularityScore, error) {
		if page == nil {
			return tables.TabularityScore{}, fmt.Errorf("nil page")
		}
		return det.Tabularity(page), nil
	})
}

// Markdown renders every table found as a markdown table, separated by
// blank lines.
func (e *Extractor) Markdown(ctx context.Context) (string, error) {
	found, err := e.Tables(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(found))
	for _, t := range found {
		if md := t.ToMarkdown(); md != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (e *Extractor) detector() tables.Detector {
	if e.options.detector != nil {
		return e.options.detector
	}
	return tables.NewLatticeDetector().WithLogger(e.log())
}

func (e *Extractor) log() *slog.Logger {
	if e.options.logger == nil {
		return slog.New(discardHandler{})
	}
	return e.options.logger
}

// resolvePages returns the selected pages in document order, without
// duplicates.
func (e *Extractor) resolvePages() ([]*model.Page, error) {
	pageCount := e.doc.PageCount()

	if len(e.options.pages) == 0 {
		return e.doc.Pages, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)

	pages := make([]*model.Page, len(indices))
	for i, idx := range indices {
		pages[i] = e.doc.Pages[idx]
	}
	return pages, nil
}
