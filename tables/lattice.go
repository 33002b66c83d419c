package tables

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/ruling"
)

// DefaultMaxGap is the default gap bridged between aligned rulings.
const DefaultMaxGap = 2.0

// LatticeDetector finds tables whose cells are delimited by drawn rulings.
//
// Configuration methods return a modified copy, so a configured detector
// is immutable and may be shared between goroutines:
//
//	det := tables.NewLatticeDetector().WithMaxGapHorizontal(4).WithLogger(logger)
//	found := det.Extract(page)
type LatticeDetector struct {
	maxGapHorizontal float64
	maxGapVertical   float64
	minRowHeight     float64
	minColumnWidth   float64
	baseline         Detector
	logger           *slog.Logger
}

// NewLatticeDetector creates a lattice detector with default tolerances,
// the geometric detector as tabularity baseline, and a discarding logger.
func NewLatticeDetector() *LatticeDetector {
	return &LatticeDetector{
		maxGapHorizontal: DefaultMaxGap,
		maxGapVertical:   DefaultMaxGap,
		baseline:         NewGeometricDetector(),
		logger:           slog.New(discardHandler{}),
	}
}

// Name returns the detector's identifier ("lattice").
func (d *LatticeDetector) Name() string {
	return "lattice"
}

func (d *LatticeDetector) clone() *LatticeDetector {
	c := *d
	return &c
}

// WithMaxGapHorizontal sets the largest gap bridged between two aligned
// horizontal rulings. Half of it is also the slack on x when rulings are
// intersected.
func (d *LatticeDetector) WithMaxGapHorizontal(gap float64) *LatticeDetector {
	c := d.clone()
	c.maxGapHorizontal = gap
	return c
}

// WithMaxGapVertical sets the largest gap bridged between two aligned
// vertical rulings. Half of it is also the slack on y when rulings are
// intersected.
func (d *LatticeDetector) WithMaxGapVertical(gap float64) *LatticeDetector {
	c := d.clone()
	c.maxGapVertical = gap
	return c
}

// WithMinRowHeight drops horizontal rulings shorter than h after merging.
func (d *LatticeDetector) WithMinRowHeight(h float64) *LatticeDetector {
	c := d.clone()
	c.minRowHeight = h
	return c
}

// WithMinColumnWidth drops vertical rulings shorter than w after merging.
func (d *LatticeDetector) WithMinColumnWidth(w float64) *LatticeDetector {
	c := d.clone()
	c.minColumnWidth = w
	return c
}

// WithBaseline sets the detector whose row and column counts Tabularity
// compares against.
func (d *LatticeDetector) WithBaseline(baseline Detector) *LatticeDetector {
	c := d.clone()
	c.baseline = baseline
	return c
}

// WithLogger sets the logger for debug output.
func (d *LatticeDetector) WithLogger(logger *slog.Logger) *LatticeDetector {
	c := d.clone()
	c.logger = logger
	return c
}

func (d *LatticeDetector) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(discardHandler{})
	}
	return d.logger
}

func (d *LatticeDetector) baselineDetector() Detector {
	if d.baseline == nil {
		return NewGeometricDetector()
	}
	return d.baseline
}

// Detect implements Detector.
func (d *LatticeDetector) Detect(page *model.Page) ([]*model.Table, error) {
	if page == nil {
		return nil, fmt.Errorf("lattice: nil page")
	}
	return d.Extract(page), nil
}

// Extract finds ruled tables on page using the page's own rulings.
func (d *LatticeDetector) Extract(page *model.Page) []*model.Table {
	return d.ExtractWithRulings(page, page.Rulings)
}

// ExtractWithRulings finds ruled tables on page, using rulings in place of
// the page's own. Tables come out in reading order.
func (d *LatticeDetector) ExtractWithRulings(page *model.Page, rulings []model.Ruling) []*model.Table {
	return d.Analyze(page, rulings).Tables
}

// Analysis holds every intermediate product of one extraction.
type Analysis struct {
	Page          *model.Page
	Horizontal    []model.Ruling // normalized horizontal rulings
	Vertical      []model.Ruling // normalized vertical rulings
	Intersections ruling.Index
	Cells         []model.Cell // detected and gap-filled cells, reading order
	Gaps          int          // number of gap-filled cells
	Regions       []model.BBox // table regions, reading order
	Tables        []*model.Table
}

// Analyze runs the full pipeline on page with the given rulings and
// returns its intermediate products along with the tables.
func (d *LatticeDetector) Analyze(page *model.Page, rulings []model.Ruling) *Analysis {
	logger := d.log().With("page", page.Number)
	hTol, vTol := d.maxGapHorizontal/2, d.maxGapVertical/2

	a := &Analysis{Page: page}
	a.Horizontal, a.Vertical = ruling.Normalize(rulings, ruling.Options{
		HorizontalGap:  hTol,
		VerticalGap:    vTol,
		MinRowHeight:   d.minRowHeight,
		MinColumnWidth: d.minColumnWidth,
	})
	logger.Debug("normalized rulings",
		"input", len(rulings),
		"horizontal", len(a.Horizontal),
		"vertical", len(a.Vertical))

	a.Intersections = ruling.FindIntersections(a.Horizontal, a.Vertical, hTol, vTol)

	detected := FindCells(a.Intersections)
	a.Cells = FillGaps(detected)
	a.Gaps = len(a.Cells) - len(detected)
	logger.Debug("detected cells",
		"intersections", len(a.Intersections),
		"cells", len(detected),
		"gaps", a.Gaps)

	a.Regions = MergeRegions(a.Cells)
	model.SortReadingOrder(a.Regions, func(b model.BBox) model.BBox { return b })

	for _, region := range a.Regions {
		a.Tables = append(a.Tables, d.buildTable(page, region, a))
	}
	logger.Debug("merged regions", "tables", len(a.Tables))

	return a
}

func (d *LatticeDetector) buildTable(page *model.Page, region model.BBox, a *Analysis) *model.Table {
	t := &model.Table{
		BBox:       region,
		PageNumber: page.Number,
		Algorithm:  d.Name(),
		HasGrid:    true,
		Confidence: 1.0,
	}

	for _, c := range a.Cells {
		if !overlaps(c.BBox, region) {
			continue
		}
		c.SetChunks(cellText(page, c.BBox))
		t.Cells = append(t.Cells, c)
	}
	for _, r := range a.Horizontal {
		if r.IntersectsBBox(region) {
			t.Horizontal = append(t.Horizontal, r)
		}
	}
	for _, r := range a.Vertical {
		if r.IntersectsBBox(region) {
			t.Vertical = append(t.Vertical, r)
		}
	}

	t.Rows = layoutRows(t.Cells)
	return t
}

// overlaps reports whether a and b share interior area; boxes that only
// touch do not overlap.
func overlaps(a, b model.BBox) bool {
	return model.CompareRounded(a.Left(), b.Right()) < 0 &&
		model.CompareRounded(b.Left(), a.Right()) < 0 &&
		model.CompareRounded(a.Top(), b.Bottom()) < 0 &&
		model.CompareRounded(b.Top(), a.Bottom()) < 0
}
