package tables

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/text"
)

// GeometricDetector implements table detection from text positions alone.
// Rows are lines of text and columns are runs of horizontally overlapping
// text separated by more than MaxCellGap. Drawn rulings only raise the
// confidence score. It serves as the baseline the lattice detector's
// tabularity check compares against.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a new geometric table detector with default configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return "geometric"
}

// Config returns the detector configuration.
func (d *GeometricDetector) Config() Config {
	return d.config
}

// WithConfig returns a copy of the detector using config.
func (d *GeometricDetector) WithConfig(config Config) *GeometricDetector {
	return &GeometricDetector{config: config}
}

// Detect finds tables on a page. It splits the text into vertically
// separated blocks, then analyzes each block for tabular structure.
func (d *GeometricDetector) Detect(page *model.Page) ([]*model.Table, error) {
	if page == nil {
		return nil, fmt.Errorf("geometric: nil page")
	}
	if len(page.Text) == 0 {
		return nil, nil
	}

	var tables []*model.Table
	for _, cluster := range d.clusterFragments(page.Text) {
		if table := d.detectTableInCluster(cluster, page.Rulings); table != nil {
			table.PageNumber = page.Number
			tables = append(tables, table)
		}
	}
	return tables, nil
}

// clusterFragments groups fragments top to bottom, starting a new cluster
// wherever the vertical gap exceeds MaxBlockGap.
func (d *GeometricDetector) clusterFragments(fragments []model.TextFragment) [][]model.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() < sorted[j].BBox.Top()
	})

	var clusters [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	bottom := sorted[0].BBox.Bottom()

	for _, frag := range sorted[1:] {
		if frag.BBox.Top()-bottom > d.config.MaxBlockGap {
			clusters = append(clusters, current)
			current = []model.TextFragment{frag}
			bottom = frag.BBox.Bottom()
			continue
		}
		current = append(current, frag)
		bottom = math.Max(bottom, frag.BBox.Bottom())
	}
	return append(clusters, current)
}

// detectTableInCluster builds a grid for one block of text, scores it, and
// fills its cells. It returns nil when the block does not look tabular.
func (d *GeometricDetector) detectTableInCluster(fragments []model.TextFragment, rulings []model.Ruling) *model.Table {
	if len(fragments) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	g := d.buildGrid(fragments, rulings)
	if g == nil || g.rowCount() < d.config.MinRows || g.colCount() < d.config.MinCols {
		return nil
	}

	confidence := d.calculateConfidence(g, fragments)
	if confidence < d.config.MinConfidence {
		return nil
	}

	table := model.NewTable(g.rowCount(), g.colCount())
	d.assignFragmentsToCells(table, g, fragments)
	table.BBox = g.bbox()
	table.Confidence = confidence
	table.HasGrid = d.hasVisibleGrid(g)
	table.Algorithm = d.Name()
	return table
}

// span is a closed interval on one axis.
type span struct {
	start, end float64
}

func (s span) center() float64 { return (s.start + s.end) / 2 }

// grid is a text-derived table skeleton. rows and cols are boundaries,
// top to bottom and left to right; colSpans are the text runs between
// column boundaries.
type grid struct {
	rows      []float64
	cols      []float64
	colSpans  []span
	hasHLines []bool
	hasVLines []bool
}

func (g *grid) rowCount() int { return max(len(g.rows)-1, 0) }
func (g *grid) colCount() int { return max(len(g.cols)-1, 0) }

func (g *grid) cellBBox(row, col int) model.BBox {
	return model.NewBBoxFromEdges(g.cols[col], g.rows[row], g.cols[col+1], g.rows[row+1])
}

func (g *grid) bbox() model.BBox {
	if g.rowCount() == 0 || g.colCount() == 0 {
		return model.BBox{}
	}
	return model.NewBBoxFromEdges(g.cols[0], g.rows[0], g.cols[len(g.cols)-1], g.rows[len(g.rows)-1])
}

// buildGrid derives row boundaries from text lines and column boundaries
// from horizontal projections, then marks boundaries that have a drawn
// ruling along them.
func (d *GeometricDetector) buildGrid(fragments []model.TextFragment, rulings []model.Ruling) *grid {
	lines := d.extractRowSpans(fragments)
	if len(lines) < d.config.MinRows {
		return nil
	}
	columns := d.extractColumnSpans(fragments)
	if len(columns) < d.config.MinCols {
		return nil
	}

	g := &grid{
		rows:     boundaries(lines),
		cols:     boundaries(columns),
		colSpans: columns,
	}
	g.hasHLines = d.detectLines(g.rows, rulings, model.Ruling.Horizontal)
	g.hasVLines = d.detectLines(g.cols, rulings, model.Ruling.Vertical)
	return g
}

// extractRowSpans groups fragments into text lines and returns each
// line's vertical extent, top to bottom. A fragment joins a line when it
// overlaps it by at least half the smaller height.
func (d *GeometricDetector) extractRowSpans(fragments []model.TextFragment) []span {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() < sorted[j].BBox.Top()
	})

	var lines []span
	for _, frag := range sorted {
		top, bottom := frag.BBox.Top(), frag.BBox.Bottom()
		if n := len(lines); n > 0 {
			last := &lines[n-1]
			overlap := math.Min(last.end, bottom) - math.Max(last.start, top)
			if overlap > 0 && overlap >= 0.5*math.Min(last.end-last.start, bottom-top) {
				last.start = math.Min(last.start, top)
				last.end = math.Max(last.end, bottom)
				continue
			}
		}
		lines = append(lines, span{start: top, end: bottom})
	}
	return lines
}

// extractColumnSpans projects fragments onto the x axis and merges
// projections separated by no more than MaxCellGap.
func (d *GeometricDetector) extractColumnSpans(fragments []model.TextFragment) []span {
	projections := make([]span, len(fragments))
	for i, frag := range fragments {
		projections[i] = span{start: frag.BBox.Left(), end: frag.BBox.Right()}
	}
	return mergeSpans(projections, d.config.MaxCellGap)
}

// mergeSpans sorts spans by start and merges those whose gap is at most gap.
func mergeSpans(spans []span, gap float64) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start-last.end <= gap {
			last.end = math.Max(last.end, s.end)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// boundaries returns the outer edges of the spans and the midpoints of the
// gaps between consecutive spans.
func boundaries(spans []span) []float64 {
	if len(spans) == 0 {
		return nil
	}
	out := make([]float64, 0, len(spans)+1)
	out = append(out, spans[0].start)
	for i := 0; i+1 < len(spans); i++ {
		out = append(out, (spans[i].end+spans[i+1].start)/2)
	}
	return append(out, spans[len(spans)-1].end)
}

// detectLines marks which boundaries have a ruling of the wanted
// orientation within AlignmentTolerance.
func (d *GeometricDetector) detectLines(positions []float64, rulings []model.Ruling, oriented func(model.Ruling) bool) []bool {
	hasLines := make([]bool, len(positions))
	for i, pos := range positions {
		for _, r := range rulings {
			if oriented(r) && math.Abs(r.Position()-pos) < d.config.AlignmentTolerance {
				hasLines[i] = true
				break
			}
		}
	}
	return hasLines
}

// calculateConfidence computes a confidence score (0.0-1.0) for the grid.
// The score combines grid regularity (30%), column alignment (30%), line
// presence (20%, only when UseLines is set), and cell occupancy (20%).
func (d *GeometricDetector) calculateConfidence(g *grid, fragments []model.TextFragment) float64 {
	score := 0.0
	maxScore := 0.0

	score += d.calculateGridRegularity(g) * 0.3
	maxScore += 0.3

	score += d.calculateAlignmentQuality(fragments, g) * 0.3
	maxScore += 0.3

	if d.config.UseLines {
		score += d.calculateLineScore(g) * 0.2
		maxScore += 0.2
	}

	score += d.calculateCellOccupancy(fragments, g) * 0.2
	maxScore += 0.2

	return score / maxScore
}

// calculateGridRegularity scores low coefficients of variation of row
// heights and column widths.
func (d *GeometricDetector) calculateGridRegularity(g *grid) float64 {
	if g.rowCount() < 2 || g.colCount() < 2 {
		return 0
	}

	rowHeights := make([]float64, g.rowCount())
	for i := range rowHeights {
		rowHeights[i] = g.rows[i+1] - g.rows[i]
	}
	colWidths := make([]float64, g.colCount())
	for i := range colWidths {
		colWidths[i] = g.cols[i+1] - g.cols[i]
	}

	rowScore := math.Max(0, 1-coefficientOfVariation(rowHeights))
	colScore := math.Max(0, 1-coefficientOfVariation(colWidths))
	return (rowScore + colScore) / 2
}

// calculateAlignmentQuality is the fraction of fragments left-, right- or
// center-aligned with the text run of their column.
func (d *GeometricDetector) calculateAlignmentQuality(fragments []model.TextFragment, g *grid) float64 {
	if len(fragments) == 0 {
		return 0
	}

	aligned := 0
	for _, frag := range fragments {
		_, col := d.findCell(frag.BBox.Center(), g)
		if col >= 0 && d.isAlignedTo(frag.BBox, g.colSpans[col]) {
			aligned++
		}
	}
	return float64(aligned) / float64(len(fragments))
}

func (d *GeometricDetector) isAlignedTo(b model.BBox, s span) bool {
	tol := d.config.AlignmentTolerance * 2
	return math.Abs(b.Left()-s.start) < tol ||
		math.Abs(b.Right()-s.end) < tol ||
		math.Abs(b.Center().X-s.center()) < tol
}

// calculateLineScore averages horizontal and vertical ruling coverage of
// the grid boundaries.
func (d *GeometricDetector) calculateLineScore(g *grid) float64 {
	if len(g.hasHLines) == 0 || len(g.hasVLines) == 0 {
		return 0
	}
	return (fraction(g.hasHLines) + fraction(g.hasVLines)) / 2
}

// calculateCellOccupancy is the fraction of grid cells containing the
// center of at least one fragment.
func (d *GeometricDetector) calculateCellOccupancy(fragments []model.TextFragment, g *grid) float64 {
	total := g.rowCount() * g.colCount()
	if total == 0 {
		return 0
	}

	occupied := make(map[[2]int]bool)
	for _, frag := range fragments {
		if row, col := d.findCell(frag.BBox.Center(), g); row >= 0 && col >= 0 {
			occupied[[2]int{row, col}] = true
		}
	}
	return float64(len(occupied)) / float64(total)
}

// assignFragmentsToCells gives each cell the grid rectangle and the merged
// text of the fragments centered in it.
func (d *GeometricDetector) assignFragmentsToCells(table *model.Table, g *grid, fragments []model.TextFragment) {
	byCell := make(map[[2]int][]model.TextFragment)
	for _, frag := range fragments {
		if row, col := d.findCell(frag.BBox.Center(), g); row >= 0 && col >= 0 {
			k := [2]int{row, col}
			byCell[k] = append(byCell[k], frag)
		}
	}

	for i := 0; i < table.RowCount(); i++ {
		for j := 0; j < table.ColCount(); j++ {
			cell := table.GetCell(i, j)
			cell.BBox = g.cellBBox(i, j)
			if frags, ok := byCell[[2]int{i, j}]; ok {
				cell.SetChunks(text.MergeWords(frags))
			}
		}
	}
}

// findCell returns the row and column of the cell containing p, or -1 for
// both when p is outside the grid.
func (d *GeometricDetector) findCell(p model.Point, g *grid) (row, col int) {
	row, col = -1, -1
	for i := 0; i < g.rowCount(); i++ {
		if p.Y >= g.rows[i] && p.Y <= g.rows[i+1] {
			row = i
			break
		}
	}
	for i := 0; i < g.colCount(); i++ {
		if p.X >= g.cols[i] && p.X <= g.cols[i+1] {
			col = i
			break
		}
	}
	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}

// hasVisibleGrid reports whether at least half of the grid boundaries
// have a drawn ruling.
func (d *GeometricDetector) hasVisibleGrid(g *grid) bool {
	total := len(g.hasHLines) + len(g.hasVLines)
	if total == 0 {
		return false
	}
	visible := countTrue(g.hasHLines) + countTrue(g.hasVLines)
	return float64(visible)/float64(total) >= 0.5
}

// Utility functions

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func fraction(flags []bool) float64 {
	if len(flags) == 0 {
		return 0
	}
	return float64(countTrue(flags)) / float64(len(flags))
}

// mean computes the arithmetic mean of a slice of float64 values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the population variance of a slice of float64 values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is the standard deviation over the mean, or 0
// for a zero mean.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return math.Sqrt(variance(values)) / m
}
