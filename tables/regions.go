package tables

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tsawler/lattice/model"
)

// MergeRegions unions adjacent cells into maximal rectilinear regions and
// returns the bounding box of each.
//
// Corners shared by an even number of cells are interior and cancel out;
// the corners that survive are the vertices of the union's boundary.
// Vertices are paired along rows into horizontal edges and along columns
// into vertical edges, and each boundary is walked by alternating between
// the two. A region that is not a rectangle (an L-shaped union, say) is
// reported as its bounding box.
func MergeRegions(cells []model.Cell) []model.BBox {
	vertices := boundaryVertices(uniqueBoxes(cells))
	if len(vertices) == 0 {
		return nil
	}

	hPartner := pairEdges(vertices, model.ComparePointsRowMajor, func(a, b model.Point) bool {
		return model.FloatEqual(a.Y, b.Y)
	})
	vPartner := pairEdges(vertices, model.ComparePointsColumnMajor, func(a, b model.Point) bool {
		return model.FloatEqual(a.X, b.X)
	})

	return traceBoundaries(vertices, hPartner, vPartner)
}

type boxKey [2]model.PointKey

func uniqueBoxes(cells []model.Cell) []model.BBox {
	seen := make(map[boxKey]bool, len(cells))
	boxes := make([]model.BBox, 0, len(cells))
	for _, c := range cells {
		corners := c.BBox.Corners()
		k := boxKey{corners[0].Key(), corners[2].Key()}
		if seen[k] {
			continue
		}
		seen[k] = true
		boxes = append(boxes, c.BBox)
	}
	return boxes
}

// boundaryVertices toggles every corner of every box and returns the
// corners seen an odd number of times, sorted row-major.
func boundaryVertices(boxes []model.BBox) []model.Point {
	counts := make(map[model.PointKey]int)
	points := make(map[model.PointKey]model.Point)
	for _, b := range boxes {
		for _, p := range b.Corners() {
			k := p.Key()
			counts[k]++
			if _, ok := points[k]; !ok {
				points[k] = p
			}
		}
	}

	var vertices []model.Point
	for k, n := range counts {
		if n%2 == 1 {
			vertices = append(vertices, points[k])
		}
	}
	sort.Slice(vertices, func(i, j int) bool {
		return model.ComparePointsRowMajor(vertices[i], vertices[j]) < 0
	})
	return vertices
}

// pairEdges orders vertices with cmp and pairs consecutive vertices two at
// a time within each run that satisfies same. partner[i] is the index of
// the vertex paired with vertices[i], or -1 for the odd one out of a run.
func pairEdges(vertices []model.Point, cmp func(a, b model.Point) int, same func(a, b model.Point) bool) []int {
	order := make([]int, len(vertices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cmp(vertices[order[i]], vertices[order[j]]) < 0
	})

	partner := make([]int, len(vertices))
	for i := range partner {
		partner[i] = -1
	}

	for i := 0; i < len(order); {
		j := i
		for j < len(order) && same(vertices[order[i]], vertices[order[j]]) {
			j++
		}
		for k := i; k+1 < j; k += 2 {
			a, b := order[k], order[k+1]
			partner[a], partner[b] = b, a
		}
		i = j
	}
	return partner
}

// traceBoundaries walks closed boundaries starting from the lowest
// unconsumed vertex, taking the vertical edge first and then alternating.
// A walk ends back at its start or at a vertex with no partner.
func traceBoundaries(vertices []model.Point, hPartner, vPartner []int) []model.BBox {
	unconsumed := roaring.New()
	unconsumed.AddRange(0, uint64(len(vertices)))

	var regions []model.BBox
	for !unconsumed.IsEmpty() {
		start := int(unconsumed.Minimum())
		unconsumed.Remove(uint32(start))

		bounds := model.NewBBoxFromPoints(vertices[start], vertices[start])
		cur, vertical := start, true
		for n := 0; n < len(vertices); n++ {
			next := hPartner[cur]
			if vertical {
				next = vPartner[cur]
			}
			if next < 0 || next == start || !unconsumed.Contains(uint32(next)) {
				break
			}
			unconsumed.Remove(uint32(next))
			bounds = bounds.Union(model.NewBBoxFromPoints(vertices[next], vertices[next]))
			cur, vertical = next, !vertical
		}

		if !bounds.IsEmpty() {
			regions = append(regions, bounds)
		}
	}
	return regions
}
