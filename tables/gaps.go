package tables

import (
	"github.com/tsawler/lattice/model"
)

// FillGaps adds the cells missing from the left side of rows whose left
// border was never drawn, and returns all cells in reading order.
//
// For each cell with area, its left neighbour is the cell in the same row
// whose right edge is rightmost without passing the cell's left edge.
// With no neighbour, the span from the leftmost edge of all cells to the
// cell is filled; with a neighbour that does not touch the cell, the span
// between them is. Filled cells take the cell's top and height.
func FillGaps(cells []model.Cell) []model.Cell {
	gaps := findGaps(cells)
	if len(gaps) == 0 {
		return cells
	}

	out := make([]model.Cell, 0, len(cells)+len(gaps))
	out = append(out, cells...)
	out = append(out, gaps...)
	model.SortReadingOrder(out, cellBBox)
	return out
}

func findGaps(cells []model.Cell) []model.Cell {
	if len(cells) == 0 {
		return nil
	}

	tableLeft := cells[0].BBox.Left()
	for _, c := range cells[1:] {
		tableLeft = min(tableLeft, c.BBox.Left())
	}

	var gaps []model.Cell
	for i, cell := range cells {
		if cell.IsEmpty() {
			continue
		}
		left := cell.BBox.Left()
		neighbour, ok := leftNeighbour(i, cells)
		switch {
		case !ok && !model.FloatEqual(left, tableLeft):
			gaps = append(gaps, model.NewCell(model.NewBBoxFromEdges(tableLeft, cell.BBox.Top(), left, cell.BBox.Bottom())))
		case ok && !model.FloatEqual(neighbour.BBox.Right(), left):
			gaps = append(gaps, model.NewCell(model.NewBBoxFromEdges(neighbour.BBox.Right(), cell.BBox.Top(), left, cell.BBox.Bottom())))
		}
	}
	return gaps
}

// leftNeighbour finds the same-row cell closest to the left of cells[i].
func leftNeighbour(i int, cells []model.Cell) (model.Cell, bool) {
	cell := cells[i].BBox
	best := -1
	for j, candidate := range cells {
		if j == i || !sameRow(cell, candidate.BBox) {
			continue
		}
		if cell.Left() >= candidate.BBox.Right() &&
			(best < 0 || candidate.BBox.Right() > cells[best].BBox.Right()) {
			best = j
		}
	}
	if best < 0 {
		return model.Cell{}, false
	}
	return cells[best], true
}

// sameRow reports whether two cells share a row: their vertical ranges
// overlap, and one does not merely sit on top of the other.
func sameRow(a, b model.BBox) bool {
	if a.Top() > b.Bottom() || b.Top() > a.Bottom() {
		return false
	}
	return !model.FloatEqual(a.Top(), b.Bottom()) && !model.FloatEqual(a.Bottom(), b.Top())
}

func cellBBox(c model.Cell) model.BBox {
	return c.BBox
}
