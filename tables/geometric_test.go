package tables

import (
	"math"
	"testing"

	"github.com/tsawler/lattice/model"
)

func gridPage() *model.Page {
	page := model.NewPage(3, 612, 792)
	for r, y := range []float64{100, 120, 140} {
		for c, x := range []float64{100, 200, 300} {
			page.AddText(model.TextFragment{
				Text:     string(rune('A'+c)) + string(rune('1'+r)),
				BBox:     model.NewBBox(x, y, 50, 15),
				FontSize: 12,
			})
		}
	}
	return page
}

func TestNewGeometricDetector(t *testing.T) {
	d := NewGeometricDetector()
	if d == nil {
		t.Fatal("NewGeometricDetector() returned nil")
	}
	if d.Config() != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", d.Config())
	}
}

func TestGeometricDetector_Name(t *testing.T) {
	d := NewGeometricDetector()
	if name := d.Name(); name != "geometric" {
		t.Errorf("Name() = %q, want 'geometric'", name)
	}
}

func TestGeometricDetector_WithConfig(t *testing.T) {
	d := NewGeometricDetector()

	config := DefaultConfig()
	config.MinRows = 3
	config.MinConfidence = 0.7

	configured := d.WithConfig(config)
	if configured.Config().MinRows != 3 {
		t.Errorf("MinRows = %d, want 3", configured.Config().MinRows)
	}
	if d.Config().MinRows != 2 {
		t.Errorf("WithConfig modified the original detector")
	}
}

func TestGeometricDetector_Detect_NilPage(t *testing.T) {
	if _, err := NewGeometricDetector().Detect(nil); err == nil {
		t.Error("Detect(nil) should fail")
	}
}

func TestGeometricDetector_Detect_EmptyPage(t *testing.T) {
	d := NewGeometricDetector()

	tables, err := d.Detect(model.NewPage(1, 612, 792))
	if err != nil {
		t.Errorf("Detect() failed: %v", err)
	}
	if tables != nil {
		t.Errorf("Detect() on empty page should return nil, got %d tables", len(tables))
	}
}

func TestGeometricDetector_Detect_Grid(t *testing.T) {
	d := NewGeometricDetector()

	tables, err := d.Detect(gridPage())
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}

	table := tables[0]
	if table.RowCount() != 3 || table.ColCount() != 3 {
		t.Errorf("table is %dx%d, want 3x3", table.RowCount(), table.ColCount())
	}
	if got := table.GetCell(1, 2).Text; got != "C2" {
		t.Errorf("cell (1,2) = %q, want C2", got)
	}
	if table.Algorithm != "geometric" {
		t.Errorf("Algorithm = %q, want geometric", table.Algorithm)
	}
	if table.PageNumber != 3 {
		t.Errorf("PageNumber = %d, want 3", table.PageNumber)
	}
	if table.HasGrid {
		t.Error("HasGrid should be false without rulings")
	}
	if !table.BBox.Equal(model.NewBBoxFromEdges(100, 100, 350, 155)) {
		t.Errorf("BBox = %+v", table.BBox)
	}
	if table.Confidence < 0.5 || table.Confidence > 1 {
		t.Errorf("Confidence = %f, want within [0.5, 1]", table.Confidence)
	}
}

func TestGeometricDetector_Detect_TooFewFragments(t *testing.T) {
	d := NewGeometricDetector()

	page := model.NewPage(1, 612, 792)
	page.AddText(
		model.TextFragment{Text: "A", BBox: model.NewBBox(100, 100, 50, 15)},
		model.TextFragment{Text: "B", BBox: model.NewBBox(200, 100, 50, 15)},
	)

	tables, err := d.Detect(page)
	if err != nil {
		t.Errorf("Detect() failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Found %d tables with only 2 fragments", len(tables))
	}
}

func TestGeometricDetector_Detect_Prose(t *testing.T) {
	d := NewGeometricDetector()

	page := model.NewPage(1, 612, 792)
	x := 0.0
	for _, w := range []string{"The", "quick", "brown", "fox"} {
		page.AddText(model.TextFragment{Text: w, BBox: model.NewBBox(x, 100, 20, 12)})
		page.AddText(model.TextFragment{Text: w, BBox: model.NewBBox(x, 114, 20, 12)})
		x += 23
	}

	tables, err := d.Detect(page)
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("prose detected as %d tables", len(tables))
	}
}

func TestClusterFragments(t *testing.T) {
	d := NewGeometricDetector()

	fragments := []model.TextFragment{
		{Text: "C", BBox: model.NewBBox(100, 300, 50, 15)},
		{Text: "A", BBox: model.NewBBox(100, 100, 50, 15)},
		{Text: "B", BBox: model.NewBBox(100, 120, 50, 15)},
	}

	clusters := d.clusterFragments(fragments)
	if len(clusters) != 2 {
		t.Fatalf("clusterFragments() returned %d clusters, want 2", len(clusters))
	}
	if len(clusters[0]) != 2 || clusters[0][0].Text != "A" {
		t.Errorf("first cluster = %v", clusters[0])
	}
	if len(clusters[1]) != 1 || clusters[1][0].Text != "C" {
		t.Errorf("second cluster = %v", clusters[1])
	}
}

func TestClusterFragments_Empty(t *testing.T) {
	d := NewGeometricDetector()
	if clusters := d.clusterFragments(nil); clusters != nil {
		t.Errorf("clusterFragments(nil) = %v, want nil", clusters)
	}
}

func TestExtractRowSpans(t *testing.T) {
	d := NewGeometricDetector()

	lines := d.extractRowSpans([]model.TextFragment{
		{BBox: model.NewBBox(0, 120, 10, 15)},
		{BBox: model.NewBBox(0, 100, 10, 15)},
		{BBox: model.NewBBox(50, 102, 10, 15)},
	})

	if len(lines) != 2 {
		t.Fatalf("extractRowSpans() returned %d lines, want 2", len(lines))
	}
	if lines[0] != (span{start: 100, end: 117}) {
		t.Errorf("first line = %+v", lines[0])
	}
}

func TestMergeSpans(t *testing.T) {
	got := mergeSpans([]span{{40, 50}, {0, 10}, {12, 20}}, 5)
	want := []span{{0, 20}, {40, 50}}

	if len(got) != len(want) {
		t.Fatalf("mergeSpans() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, got[i], want[i])
		}
	}
	if mergeSpans(nil, 5) != nil {
		t.Error("mergeSpans(nil) should be nil")
	}
}

func TestBoundaries(t *testing.T) {
	got := boundaries([]span{{0, 10}, {20, 30}})
	want := []float64{0, 15, 30}

	if len(got) != len(want) {
		t.Fatalf("boundaries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("boundary %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestDetectLines(t *testing.T) {
	d := NewGeometricDetector()

	rulings := []model.Ruling{
		model.NewRuling(0, 117, 400, 117),
		model.NewRuling(100, 0, 100, 400),
	}

	hasH := d.detectLines([]float64{100, 117.5}, rulings, model.Ruling.Horizontal)
	if hasH[0] || !hasH[1] {
		t.Errorf("horizontal lines = %v, want [false true]", hasH)
	}

	hasV := d.detectLines([]float64{100, 200}, rulings, model.Ruling.Vertical)
	if !hasV[0] || hasV[1] {
		t.Errorf("vertical lines = %v, want [true false]", hasV)
	}
}

func TestCalculateGridRegularity(t *testing.T) {
	d := NewGeometricDetector()

	g := &grid{rows: []float64{0, 10, 20, 30}, cols: []float64{0, 10, 20}}
	if r := d.calculateGridRegularity(g); math.Abs(r-1) > 1e-9 {
		t.Errorf("regular grid scored %f, want 1", r)
	}

	irregular := &grid{rows: []float64{0, 10, 60}, cols: []float64{0, 10, 20}}
	if r := d.calculateGridRegularity(irregular); r >= 1 {
		t.Errorf("irregular grid scored %f, want < 1", r)
	}
}

func TestCalculateGridRegularity_TooSmall(t *testing.T) {
	d := NewGeometricDetector()

	g := &grid{rows: []float64{0, 10}, cols: []float64{0, 10, 20}}
	if r := d.calculateGridRegularity(g); r != 0 {
		t.Errorf("single-row grid scored %f, want 0", r)
	}
}

func TestFindCell(t *testing.T) {
	d := NewGeometricDetector()
	g := &grid{rows: []float64{0, 10, 20}, cols: []float64{0, 50, 100}}

	tests := []struct {
		p        model.Point
		row, col int
	}{
		{model.Point{X: 25, Y: 5}, 0, 0},
		{model.Point{X: 75, Y: 15}, 1, 1},
		{model.Point{X: 150, Y: 5}, -1, -1},
		{model.Point{X: 25, Y: 50}, -1, -1},
	}

	for _, tt := range tests {
		row, col := d.findCell(tt.p, g)
		if row != tt.row || col != tt.col {
			t.Errorf("findCell(%v) = (%d, %d), want (%d, %d)", tt.p, row, col, tt.row, tt.col)
		}
	}
}

func TestCalculateLineScore(t *testing.T) {
	d := NewGeometricDetector()

	g := &grid{
		hasHLines: []bool{true, true, false, false},
		hasVLines: []bool{true, true},
	}
	if s := d.calculateLineScore(g); math.Abs(s-0.75) > 1e-9 {
		t.Errorf("calculateLineScore() = %f, want 0.75", s)
	}
	if s := d.calculateLineScore(&grid{}); s != 0 {
		t.Errorf("calculateLineScore(empty) = %f, want 0", s)
	}
}

func TestCalculateCellOccupancy(t *testing.T) {
	d := NewGeometricDetector()
	g := &grid{rows: []float64{0, 10, 20}, cols: []float64{0, 50, 100}}

	fragments := []model.TextFragment{
		{BBox: model.NewBBox(10, 2, 20, 6)},
		{BBox: model.NewBBox(60, 12, 20, 6)},
	}
	if o := d.calculateCellOccupancy(fragments, g); math.Abs(o-0.5) > 1e-9 {
		t.Errorf("calculateCellOccupancy() = %f, want 0.5", o)
	}
}

func TestHasVisibleGrid(t *testing.T) {
	d := NewGeometricDetector()

	tests := []struct {
		name string
		g    *grid
		want bool
	}{
		{"all lines", &grid{hasHLines: []bool{true, true}, hasVLines: []bool{true, true}}, true},
		{"half the lines", &grid{hasHLines: []bool{true, false}, hasVLines: []bool{true, false}}, true},
		{"few lines", &grid{hasHLines: []bool{true, false, false}, hasVLines: []bool{false, false}}, false},
		{"empty", &grid{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.hasVisibleGrid(tt.g); got != tt.want {
				t.Errorf("hasVisibleGrid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if m := mean([]float64{1, 2, 3, 4}); m != 2.5 {
		t.Errorf("mean() = %f, want 2.5", m)
	}
	if m := mean(nil); m != 0 {
		t.Errorf("mean(nil) = %f, want 0", m)
	}
}

func TestVariance(t *testing.T) {
	if v := variance([]float64{2, 4, 4, 4, 5, 5, 7, 9}); v != 4 {
		t.Errorf("variance() = %f, want 4", v)
	}
	if v := variance(nil); v != 0 {
		t.Errorf("variance(nil) = %f, want 0", v)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if cv := coefficientOfVariation([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(cv-0.4) > 1e-9 {
		t.Errorf("coefficientOfVariation() = %f, want 0.4", cv)
	}
	if cv := coefficientOfVariation([]float64{0, 0}); cv != 0 {
		t.Errorf("coefficientOfVariation(zeros) = %f, want 0", cv)
	}
}

func BenchmarkGeometricDetect(b *testing.B) {
	d := NewGeometricDetector()

	page := model.NewPage(1, 612, 792)
	for i := 0; i < 50; i++ {
		page.AddText(model.TextFragment{
			Text: "Text",
			BBox: model.NewBBox(float64(i%5)*100, float64(100+(i/5)*20), 80, 15),
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Detect(page)
	}
}
