package ruling

import (
	"sort"

	"github.com/tsawler/lattice/model"
)

// Intersection is a point where a horizontal and a vertical ruling meet,
// recorded with the IDs of both rulings.
type Intersection struct {
	Point      model.Point
	Horizontal int
	Vertical   int
}

// Index maps rounded points to the intersection found there.
type Index map[model.PointKey]Intersection

// Lookup returns the intersection at p, if any.
func (idx Index) Lookup(p model.Point) (Intersection, bool) {
	in, ok := idx[p.Key()]
	return in, ok
}

// Points returns the indexed points sorted row-major (y, then x).
func (idx Index) Points() []model.Point {
	points := make([]model.Point, 0, len(idx))
	for _, in := range idx {
		points = append(points, in.Point)
	}
	sort.Slice(points, func(i, j int) bool {
		return model.ComparePointsRowMajor(points[i], points[j]) < 0
	})
	return points
}

// FindIntersections tests every horizontal against every vertical ruling.
// They meet when the vertical's x lies within the horizontal's extent
// widened by hTol, and the horizontal's y lies within the vertical's
// extent widened by vTol. The meeting point is (vertical x, horizontal y).
//
// When two pairs produce the same rounded point the first pair wins;
// rulings are visited in slice order, horizontals outermost.
func FindIntersections(horizontals, verticals []model.Ruling, hTol, vTol float64) Index {
	idx := make(Index)
	for _, h := range horizontals {
		y := h.Position()
		for _, v := range verticals {
			x := v.Position()
			if x < h.StartPos()-hTol || x > h.EndPos()+hTol {
				continue
			}
			if y < v.StartPos()-vTol || y > v.EndPos()+vTol {
				continue
			}
			p := model.Point{X: x, Y: y}
			key := p.Key()
			if _, seen := idx[key]; seen {
				continue
			}
			idx[key] = Intersection{Point: p, Horizontal: h.ID, Vertical: v.ID}
		}
	}
	return idx
}
