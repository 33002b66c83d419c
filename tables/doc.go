// Package tables detects tables on a page and lays out their cells.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [LatticeDetector] - recovers tables drawn with ruling lines
//   - [GeometricDetector] - uses spatial analysis of text positions
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("lattice")
//	found, err := detector.Detect(page)
//
// # Lattice Detection
//
// The [LatticeDetector] runs a fixed pipeline over the page's rulings:
//
//  1. Normalization: aligned segments are merged until nothing changes
//  2. Intersection: each horizontal/vertical crossing is indexed with the
//     IDs of both rulings
//  3. Cell detection: [FindCells] closes the smallest rectangle at each
//     crossing whose edges all lie on the same rulings
//  4. Gap filling: [FillGaps] adds cells where a row's left border is missing
//  5. Region merging: [MergeRegions] traces the outline of each group of
//     adjacent cells and reports its bounding box as a table
//
// Each table then receives the cells and rulings inside it, with cell text
// merged into chunks by the text package. [LatticeDetector.Analyze] exposes
// every intermediate product for inspection.
//
// # Tabularity
//
// [LatticeDetector.Tabularity] decides whether a page is best read as a
// ruled table by comparing the ruled table's row and column counts with
// those of a text-only baseline detector:
//
//	score := tables.NewLatticeDetector().Tabularity(page)
//	if score.Tabular { ... }
//
// # Geometric Detection
//
// The [GeometricDetector] builds a grid from text alone: rows are lines of
// text and columns are horizontal runs of text separated by more than
// MaxCellGap. Detection confidence (0-1) is based on:
//
//   - Grid regularity (30%)
//   - Column alignment (30%)
//   - Ruling presence (20%, when UseLines is set)
//   - Cell occupancy (20%)
//
// Configuration is a [Config] value:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	detector := tables.NewGeometricDetector().WithConfig(config)
package tables
