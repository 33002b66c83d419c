package ruling

import (
	"sort"

	"github.com/tsawler/lattice/model"
)

// Split separates rulings into horizontal and vertical sets, each snapped
// to its axis with Start before End. Oblique and zero-length rulings are
// dropped.
func Split(rulings []model.Ruling) (horizontals, verticals []model.Ruling) {
	for _, r := range rulings {
		switch {
		case r.Oblique():
			continue
		case r.Horizontal():
			horizontals = append(horizontals, r.Normalized())
		case r.Vertical():
			verticals = append(verticals, r.Normalized())
		}
	}
	return horizontals, verticals
}

// sortOriented orders same-orientation rulings by position, then by start.
func sortOriented(rulings []model.Ruling) {
	sort.SliceStable(rulings, func(i, j int) bool {
		a, b := rulings[i], rulings[j]
		if c := model.CompareRounded(a.Position(), b.Position()); c != 0 {
			return c < 0
		}
		return a.StartPos() < b.StartPos()
	})
}

// Collapse fuses same-orientation rulings that lie on (nearly) the same
// line and (nearly) touch. Two rulings are fused when their positions
// differ by at most orthoTol and their extents overlap once both are
// lengthened by axisTol at each end, so gaps up to 2*axisTol are bridged.
// The fused ruling keeps the position of the first one and spans both
// extents. Results shorter than minLength, and
// zero-length results, are dropped.
//
// The input slice is not modified.
func Collapse(rulings []model.Ruling, axisTol, orthoTol, minLength float64) []model.Ruling {
	if len(rulings) == 0 {
		return nil
	}

	sorted := make([]model.Ruling, len(rulings))
	copy(sorted, rulings)
	sortOriented(sorted)

	merged := make([]model.Ruling, 0, len(sorted))
	for _, next := range sorted {
		if n := len(merged); n > 0 {
			last := merged[n-1]
			if nearlyCollinear(last, next, axisTol, orthoTol) {
				start := min(last.StartPos(), next.StartPos())
				end := max(last.EndPos(), next.EndPos())
				merged[n-1] = last.WithExtent(last.Position(), start, end)
				continue
			}
		}
		if next.Length() == 0 {
			continue
		}
		merged = append(merged, next)
	}

	out := merged[:0]
	for _, r := range merged {
		if r.Length() > 0 && r.Length() >= minLength {
			out = append(out, r)
		}
	}
	return out
}

func nearlyCollinear(a, b model.Ruling, axisTol, orthoTol float64) bool {
	if abs(a.Position()-b.Position()) > orthoTol && !model.FloatEqual(a.Position(), b.Position()) {
		return false
	}
	// both extents are widened by axisTol at each end
	return b.StartPos()-axisTol <= a.EndPos()+axisTol && a.StartPos()-axisTol <= b.EndPos()+axisTol
}

// Normalize splits rulings by orientation and collapses each set until its
// size stops shrinking, since one merge can bring two previously distant
// rulings within tolerance. Every surviving ruling gets a fresh ID:
// horizontals are numbered first, verticals after them.
func Normalize(rulings []model.Ruling, opts Options) (horizontals, verticals []model.Ruling) {
	horizontals, verticals = Split(rulings)

	horizontals = collapseToFixedPoint(horizontals, opts.HorizontalGap, opts.VerticalGap, opts.MinRowHeight)
	verticals = collapseToFixedPoint(verticals, opts.VerticalGap, opts.HorizontalGap, opts.MinColumnWidth)

	id := 0
	for i := range horizontals {
		horizontals[i].ID = id
		id++
	}
	for i := range verticals {
		verticals[i].ID = id
		id++
	}
	return horizontals, verticals
}

func collapseToFixedPoint(rulings []model.Ruling, axisTol, orthoTol, minLength float64) []model.Ruling {
	for {
		count := len(rulings)
		rulings = Collapse(rulings, axisTol, orthoTol, minLength)
		if len(rulings) >= count {
			return rulings
		}
	}
}

// Options are the tolerances used by Normalize and FindIntersections.
type Options struct {
	// HorizontalGap lengthens each horizontal ruling at both ends when
	// merging, so two pieces up to twice this apart are joined. It is
	// also the slack used on x when intersecting.
	HorizontalGap float64

	// VerticalGap does the same for vertical rulings along y, and is the
	// slack used on y when intersecting.
	VerticalGap float64

	// MinRowHeight drops horizontal rulings shorter than this.
	MinRowHeight float64

	// MinColumnWidth drops vertical rulings shorter than this.
	MinColumnWidth float64
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
