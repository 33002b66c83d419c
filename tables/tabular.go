package tables

import (
	"github.com/tsawler/lattice/model"
)

// TabularityThreshold bounds the ratio between ruled and text-only table
// dimensions: a page is tabular when the ratio lies strictly between the
// threshold and its reciprocal.
const TabularityThreshold = 0.65

// TabularityScore records how a page's ruled table compares with what the
// baseline detector sees in its text alone.
type TabularityScore struct {
	LatticeRows  int
	LatticeCols  int
	BaselineRows int
	BaselineCols int
	Ratio        float64
	Tabular      bool
	Reason       string // why the page is not tabular, empty when it is
}

// IsTabular reports whether the page is best read as a ruled table.
func (d *LatticeDetector) IsTabular(page *model.Page) bool {
	return d.Tabularity(page).Tabular
}

// Tabularity trims the page to the bounds of its text, then compares the
// first ruled table found there with the first table the baseline finds
// in the same area. The ratio is the mean of the column and row count
// ratios. Pages without text, without a ruled table, or where the
// baseline finds nothing usable are not tabular.
func (d *LatticeDetector) Tabularity(page *model.Page) TabularityScore {
	logger := d.log().With("page", page.Number)

	bounds, ok := page.TextBounds()
	if !ok {
		return notTabular(TabularityScore{}, "no text")
	}
	area := page.Area(bounds)

	var score TabularityScore
	ruled := d.Extract(area)
	if len(ruled) == 0 {
		return notTabular(score, "no ruled table")
	}
	score.LatticeRows, score.LatticeCols = ruled[0].RowCount(), ruled[0].ColCount()

	baseline := d.baselineDetector()
	found, err := baseline.Detect(area)
	if err != nil {
		logger.Debug("baseline detector failed", "detector", baseline.Name(), "error", err)
		return notTabular(score, "baseline error")
	}
	if len(found) == 0 {
		return notTabular(score, "no baseline table")
	}
	score.BaselineRows, score.BaselineCols = found[0].RowCount(), found[0].ColCount()
	if score.BaselineRows == 0 || score.BaselineCols == 0 {
		return notTabular(score, "empty baseline table")
	}

	score.Ratio = (float64(score.LatticeCols)/float64(score.BaselineCols) +
		float64(score.LatticeRows)/float64(score.BaselineRows)) / 2
	score.Tabular = score.Ratio > TabularityThreshold && score.Ratio < 1/TabularityThreshold
	if !score.Tabular {
		score.Reason = "ratio out of range"
	}

	logger.Debug("tabularity",
		"lattice_rows", score.LatticeRows,
		"lattice_cols", score.LatticeCols,
		"baseline_rows", score.BaselineRows,
		"baseline_cols", score.BaselineCols,
		"ratio", score.Ratio,
		"tabular", score.Tabular)
	return score
}

func notTabular(score TabularityScore, reason string) TabularityScore {
	score.Tabular = false
	score.Reason = reason
	return score
}
