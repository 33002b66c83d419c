package tables

import (
	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/ruling"
)

// FindCells returns the minimal closed rectangles in idx. Each indexed
// point is tried as a top-left corner P. A point below P on the same x
// qualifies only if it lies on P's vertical ruling; a point right of P on
// the same y only if it lies on P's horizontal ruling. The pair closes a
// cell when the bottom-right corner is indexed on the same horizontal
// ruling as the point below and the same vertical ruling as the point to
// the right. The nearest such pair wins and the search moves to the next
// anchor.
//
// Cells come out in row-major order of their top-left corners.
func FindCells(idx ruling.Index) []model.Cell {
	points := idx.Points()

	var cells []model.Cell
	for i, topLeft := range points {
		anchor := idx[topLeft.Key()]

		var below, right []ruling.Intersection
		for _, p := range points[i+1:] {
			in := idx[p.Key()]
			switch {
			case model.FloatEqual(p.X, topLeft.X) && model.CompareRounded(p.Y, topLeft.Y) > 0:
				below = append(below, in)
			case model.FloatEqual(p.Y, topLeft.Y) && model.CompareRounded(p.X, topLeft.X) > 0:
				right = append(right, in)
			}
		}

		if cell, ok := closeCell(idx, anchor, below, right); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

func closeCell(idx ruling.Index, anchor ruling.Intersection, below, right []ruling.Intersection) (model.Cell, bool) {
	for _, b := range below {
		if b.Vertical != anchor.Vertical {
			continue
		}
		for _, r := range right {
			if r.Horizontal != anchor.Horizontal {
				continue
			}
			corner, ok := idx.Lookup(model.Point{X: r.Point.X, Y: b.Point.Y})
			if !ok || corner.Horizontal != b.Horizontal || corner.Vertical != r.Vertical {
				continue
			}
			return model.NewCell(model.NewBBoxFromPoints(anchor.Point, corner.Point)), true
		}
	}
	return model.Cell{}, false
}
