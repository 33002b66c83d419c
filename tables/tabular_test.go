package tables

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/lattice/model"
)

// stubDetector reports a single table of fixed size.
type stubDetector struct {
	rows, cols int
	none       bool
	err        error
}

func (s stubDetector) Name() string { return "stub" }

func (s stubDetector) Detect(*model.Page) ([]*model.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.none {
		return nil, nil
	}
	return []*model.Table{model.NewTable(s.rows, s.cols)}, nil
}

// ruledPage is a 2x2 grid with text reaching both outer corners, so the
// text bounds coincide with the grid.
func ruledPage() *model.Page {
	page := pageWith(gridRulings(2, 2, 100, 100))
	page.AddText(
		model.TextFragment{Text: "a", BBox: model.NewBBox(0, 0, 10, 10), FontSize: 10},
		model.TextFragment{Text: "b", BBox: model.NewBBox(90, 90, 10, 10), FontSize: 10},
	)
	return page
}

func TestTabularity(t *testing.T) {
	tests := []struct {
		name     string
		baseline Detector
		tabular  bool
		ratio    float64
		reason   string
	}{
		{"same shape", stubDetector{rows: 2, cols: 2}, true, 1, ""},
		{"just inside", stubDetector{rows: 3, cols: 3}, true, 2.0 / 3, ""},
		{"baseline much larger", stubDetector{rows: 6, cols: 6}, false, 1.0 / 3, "ratio out of range"},
		{"baseline much smaller", stubDetector{rows: 1, cols: 1}, false, 2, "ratio out of range"},
		{"empty baseline table", stubDetector{}, false, 0, "empty baseline table"},
		{"no baseline table", stubDetector{none: true}, false, 0, "no baseline table"},
		{"baseline error", stubDetector{err: errors.New("boom")}, false, 0, "baseline error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewLatticeDetector().WithBaseline(tt.baseline)
			score := d.Tabularity(ruledPage())

			assert.Equal(t, tt.tabular, score.Tabular)
			assert.InDelta(t, tt.ratio, score.Ratio, 1e-9)
			assert.Equal(t, tt.reason, score.Reason)
			assert.Equal(t, tt.tabular, d.IsTabular(ruledPage()))
			assert.Equal(t, 2, score.LatticeRows)
			assert.Equal(t, 2, score.LatticeCols)
		})
	}
}

func TestTabularityWithoutText(t *testing.T) {
	d := NewLatticeDetector().WithBaseline(stubDetector{rows: 2, cols: 2})
	score := d.Tabularity(pageWith(gridRulings(2, 2, 100, 100)))

	assert.False(t, score.Tabular)
	assert.Equal(t, "no text", score.Reason)
}

func TestTabularityWithoutRulings(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	page.AddText(model.TextFragment{Text: "prose", BBox: model.NewBBox(10, 10, 40, 12), FontSize: 12})

	score := NewLatticeDetector().WithBaseline(stubDetector{rows: 2, cols: 2}).Tabularity(page)
	assert.False(t, score.Tabular)
	assert.Equal(t, "no ruled table", score.Reason)
	assert.Zero(t, score.LatticeRows)
}

// filledGridPage is a 3x3 ruled table of 100x30 cells with one word per
// cell. The words touch the outer border so the text bounds cover the
// whole grid.
func filledGridPage() *model.Page {
	page := pageWith(gridRulings(3, 3, 300, 90))
	lefts := []float64{0, 110, 260}
	tops := []float64{0, 39, 78}
	for _, y := range tops {
		for _, x := range lefts {
			page.AddText(model.TextFragment{Text: "cell", BBox: model.NewBBox(x, y, 40, 12), FontSize: 12})
		}
	}
	return page
}

// boxedProsePage is a single ruled box around two columns of four text
// lines each.
func boxedProsePage() *model.Page {
	page := pageWith(gridRulings(1, 1, 300, 90))
	for _, y := range []float64{0, 26, 52, 78} {
		page.AddText(
			model.TextFragment{Text: "left column prose", BBox: model.NewBBox(0, y, 140, 12), FontSize: 12},
			model.TextFragment{Text: "right column prose", BBox: model.NewBBox(160, y, 140, 12), FontSize: 12},
		)
	}
	return page
}

func TestTabularityWithGeometricBaseline(t *testing.T) {
	t.Run("filled grid", func(t *testing.T) {
		d := NewLatticeDetector()
		score := d.Tabularity(filledGridPage())

		assert.True(t, score.Tabular, "reason %q", score.Reason)
		assert.Equal(t, 3, score.LatticeRows)
		assert.Equal(t, 3, score.LatticeCols)
		assert.Equal(t, 3, score.BaselineRows)
		assert.Equal(t, 3, score.BaselineCols)
		assert.InDelta(t, 1, score.Ratio, 1e-9)
		assert.True(t, d.IsTabular(filledGridPage()))
	})

	t.Run("boxed prose", func(t *testing.T) {
		d := NewLatticeDetector()
		score := d.Tabularity(boxedProsePage())

		assert.False(t, score.Tabular)
		assert.Equal(t, "ratio out of range", score.Reason)
		assert.Equal(t, 1, score.LatticeRows)
		assert.Equal(t, 1, score.LatticeCols)
		assert.Equal(t, 4, score.BaselineRows)
		assert.Equal(t, 2, score.BaselineCols)
		assert.InDelta(t, 0.375, score.Ratio, 1e-9)
		assert.False(t, d.IsTabular(boxedProsePage()))
	})
}
