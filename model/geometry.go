package model

import (
	"math"
	"sort"
)

// Precision is the number of decimal places coordinates are rounded to
// before they are compared, hashed, or ordered.
const Precision = 2

var precisionScale = math.Pow(10, Precision)

// Round rounds v to Precision decimal places. It is the single rounding
// function behind point equality, hashing, and ordering.
func Round(v float64) float64 {
	return math.Round(v*precisionScale) / precisionScale
}

// roundedUnits returns v in units of 10^-Precision.
func roundedUnits(v float64) int64 {
	return int64(math.Round(v * precisionScale))
}

// FloatEqual reports whether a and b are equal after rounding.
func FloatEqual(a, b float64) bool {
	return roundedUnits(a) == roundedUnits(b)
}

// CompareRounded compares a and b after rounding. It returns -1, 0 or +1.
func CompareRounded(a, b float64) int {
	ra, rb := roundedUnits(a), roundedUnits(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// Point represents a 2D point in page space (y grows downward).
type Point struct {
	X, Y float64
}

// PointKey is the hashable, rounded form of a Point.
type PointKey struct {
	X, Y int64
}

// Key returns the rounded key for p. Points that are Equal share a key.
func (p Point) Key() PointKey {
	return PointKey{X: roundedUnits(p.X), Y: roundedUnits(p.Y)}
}

// Equal reports whether p and other coincide after rounding.
func (p Point) Equal(other Point) bool {
	return p.Key() == other.Key()
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ComparePointsRowMajor orders points by y, then x, after rounding.
func ComparePointsRowMajor(a, b Point) int {
	if c := CompareRounded(a.Y, b.Y); c != 0 {
		return c
	}
	return CompareRounded(a.X, b.X)
}

// ComparePointsColumnMajor orders points by x, then y, after rounding.
func ComparePointsColumnMajor(a, b Point) int {
	if c := CompareRounded(a.X, b.X); c != 0 {
		return c
	}
	return CompareRounded(a.Y, b.Y)
}

// BBox represents an axis-aligned rectangle in page space. X is the left
// edge and Y the top edge; y grows downward, so Bottom() > Top() for a
// box with positive height.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its left, top, width and height.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a bounding box from two opposite corners.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromEdges creates a bounding box from its four edges.
func NewBBoxFromEdges(left, top, right, bottom float64) BBox {
	return BBox{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// BoundsOf returns the smallest box containing every box in boxes, and
// false when boxes is empty.
func BoundsOf(boxes []BBox) (BBox, bool) {
	if len(boxes) == 0 {
		return BBox{}, false
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out, true
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Corners returns the four corners: top-left, top-right, bottom-right,
// bottom-left.
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.Left(), Y: b.Top()},
		{X: b.Right(), Y: b.Top()},
		{X: b.Right(), Y: b.Bottom()},
		{X: b.Left(), Y: b.Bottom()},
	}
}

// Equal reports whether b and other have the same edges after rounding.
func (b BBox) Equal(other BBox) bool {
	return FloatEqual(b.Left(), other.Left()) &&
		FloatEqual(b.Top(), other.Top()) &&
		FloatEqual(b.Right(), other.Right()) &&
		FloatEqual(b.Bottom(), other.Bottom())
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// ContainsBBox reports whether other lies entirely inside b, allowing for
// rounding noise on the edges.
func (b BBox) ContainsBBox(other BBox) bool {
	return CompareRounded(other.Left(), b.Left()) >= 0 &&
		CompareRounded(other.Right(), b.Right()) <= 0 &&
		CompareRounded(other.Top(), b.Top()) >= 0 &&
		CompareRounded(other.Bottom(), b.Bottom()) <= 0
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	left := math.Min(b.Left(), other.Left())
	top := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return NewBBoxFromEdges(left, top, right, bottom)
}

// VerticalOverlap returns the length of the overlap between the vertical
// extents of b and other, or 0 when they do not overlap.
func (b BBox) VerticalOverlap(other BBox) float64 {
	return math.Max(0, math.Min(b.Bottom(), other.Bottom())-math.Max(b.Top(), other.Top()))
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// readingOrderOverlap is the vertical overlap above which two boxes are
// treated as sitting on the same line.
const readingOrderOverlap = 0.4

// ReadingOrderLess is a loose top-to-bottom, left-to-right order. Boxes
// that overlap vertically are ordered by left edge; otherwise by bottom.
// It is not a strict weak ordering for every input, so callers sort with
// a stable sort.
func ReadingOrderLess(a, b BBox) bool {
	if a.Equal(b) {
		return false
	}
	if a.VerticalOverlap(b) > readingOrderOverlap {
		return a.Left() < b.Left()
	}
	return a.Bottom() < b.Bottom()
}

// SortReadingOrder stably sorts items in reading order using box to
// obtain each item's bounds.
func SortReadingOrder[T any](items []T, box func(T) BBox) {
	sort.SliceStable(items, func(i, j int) bool {
		return ReadingOrderLess(box(items[i]), box(items[j]))
	})
}
