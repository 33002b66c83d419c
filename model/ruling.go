package model

import "math"

// OrientationTolerance is the largest extent on the orthogonal axis for a
// ruling to still count as horizontal or vertical.
const OrientationTolerance = 1.0

// MaxSkew bounds the orthogonal extent relative to the ruling's length
// along its axis (about 1 degree). Longer skewed strokes are oblique.
const MaxSkew = 0.02

// Ruling is a straight line segment drawn on a page, usually one edge of a
// table grid. Rulings are identified by ID: two rulings with the same
// coordinates but different IDs are different edges.
type Ruling struct {
	ID    int
	Start Point
	End   Point
}

// NewRuling creates a ruling from its endpoints with an unassigned ID.
func NewRuling(x1, y1, x2, y2 float64) Ruling {
	return Ruling{ID: -1, Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}}
}

// Horizontal reports whether the ruling has (near) zero vertical extent.
func (r Ruling) Horizontal() bool {
	dx, dy := r.extents()
	return dx > 0 && dy < OrientationTolerance && dy <= MaxSkew*dx
}

// Vertical reports whether the ruling has (near) zero horizontal extent.
func (r Ruling) Vertical() bool {
	dx, dy := r.extents()
	return dy > 0 && dx < OrientationTolerance && dx <= MaxSkew*dy
}

// Oblique reports whether the ruling is neither horizontal nor vertical.
func (r Ruling) Oblique() bool {
	return !r.Horizontal() && !r.Vertical()
}

func (r Ruling) extents() (dx, dy float64) {
	return math.Abs(r.End.X - r.Start.X), math.Abs(r.End.Y - r.Start.Y)
}

// Position is the y of a horizontal ruling or the x of a vertical one.
func (r Ruling) Position() float64 {
	if r.Vertical() {
		return r.Start.X
	}
	return r.Start.Y
}

// StartPos is the lower coordinate along the ruling's own axis.
func (r Ruling) StartPos() float64 {
	if r.Vertical() {
		return math.Min(r.Start.Y, r.End.Y)
	}
	return math.Min(r.Start.X, r.End.X)
}

// EndPos is the higher coordinate along the ruling's own axis.
func (r Ruling) EndPos() float64 {
	if r.Vertical() {
		return math.Max(r.Start.Y, r.End.Y)
	}
	return math.Max(r.Start.X, r.End.X)
}

// Length returns the Euclidean length of the ruling.
func (r Ruling) Length() float64 {
	return r.Start.Distance(r.End)
}

// Normalized returns the ruling snapped to its axis with Start before End.
// Horizontal rulings get a single y, vertical rulings a single x.
func (r Ruling) Normalized() Ruling {
	switch {
	case r.Horizontal():
		y := (r.Start.Y + r.End.Y) / 2
		return Ruling{ID: r.ID, Start: Point{X: r.StartPos(), Y: y}, End: Point{X: r.EndPos(), Y: y}}
	case r.Vertical():
		x := (r.Start.X + r.End.X) / 2
		return Ruling{ID: r.ID, Start: Point{X: x, Y: r.StartPos()}, End: Point{X: x, Y: r.EndPos()}}
	}
	return r
}

// WithExtent returns a copy of an oriented ruling spanning [start, end]
// along its axis at the given position.
func (r Ruling) WithExtent(position, start, end float64) Ruling {
	if r.Vertical() {
		return Ruling{ID: r.ID, Start: Point{X: position, Y: start}, End: Point{X: position, Y: end}}
	}
	return Ruling{ID: r.ID, Start: Point{X: start, Y: position}, End: Point{X: end, Y: position}}
}

// BoundingBox returns the (possibly zero-width) box spanned by the ruling.
func (r Ruling) BoundingBox() BBox {
	return NewBBoxFromPoints(r.Start, r.End)
}

// IntersectsBBox reports whether the segment touches or crosses b.
func (r Ruling) IntersectsBBox(b BBox) bool {
	_, ok := r.Clip(b)
	return ok
}

// Clip returns the part of the ruling inside b (Liang-Barsky) and whether
// any part lies inside.
func (r Ruling) Clip(b BBox) (Ruling, bool) {
	dx := r.End.X - r.Start.X
	dy := r.End.Y - r.Start.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, r.Start.X - b.Left()},
		{dx, b.Right() - r.Start.X},
		{-dy, r.Start.Y - b.Top()},
		{dy, b.Bottom() - r.Start.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return Ruling{}, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return Ruling{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Ruling{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return Ruling{
		ID:    r.ID,
		Start: Point{X: r.Start.X + t0*dx, Y: r.Start.Y + t0*dy},
		End:   Point{X: r.Start.X + t1*dx, Y: r.Start.Y + t1*dy},
	}, true
}
