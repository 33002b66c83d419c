package model

import (
	"sort"

	"github.com/tidwall/rtree"
)

// Page holds the raw geometry of a single page: its rulings and its
// positioned text. Text is indexed spatially so area queries do not scan
// every fragment.
//
// A Page is built with AddText/AddRuling and is read-only afterwards; it
// may then be shared between goroutines.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	Rulings []Ruling
	Text    []TextFragment

	index rtree.RTreeG[int]
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number:  number,
		Width:   width,
		Height:  height,
		Rulings: make([]Ruling, 0),
		Text:    make([]TextFragment, 0),
	}
}

// AddText adds text fragments to the page and its spatial index.
func (p *Page) AddText(fragments ...TextFragment) {
	for _, f := range fragments {
		p.index.Insert(bboxMin(f.BBox), bboxMax(f.BBox), len(p.Text))
		p.Text = append(p.Text, f)
	}
}

// AddRuling adds rulings to the page.
func (p *Page) AddRuling(rulings ...Ruling) {
	p.Rulings = append(p.Rulings, rulings...)
}

// Bounds returns the page rectangle.
func (p *Page) Bounds() BBox {
	return BBox{Width: p.Width, Height: p.Height}
}

// TextInArea returns the fragments lying entirely inside area, in the
// order they were added.
func (p *Page) TextInArea(area BBox) []TextFragment {
	if p.index.Len() != len(p.Text) {
		// Text was assigned directly rather than through AddText.
		return p.scanText(area)
	}

	var hits []int
	p.index.Search(bboxMin(area), bboxMax(area), func(_, _ [2]float64, i int) bool {
		if area.ContainsBBox(p.Text[i].BBox) {
			hits = append(hits, i)
		}
		return true
	})
	if len(hits) == 0 {
		return nil
	}

	// rtree iteration order is not insertion order
	sort.Ints(hits)
	out := make([]TextFragment, len(hits))
	for j, i := range hits {
		out[j] = p.Text[i]
	}
	return out
}

func (p *Page) scanText(area BBox) []TextFragment {
	var out []TextFragment
	for _, f := range p.Text {
		if area.ContainsBBox(f.BBox) {
			out = append(out, f)
		}
	}
	return out
}

// TextBounds returns the smallest box containing all text on the page, and
// false when the page has no text.
func (p *Page) TextBounds() (BBox, bool) {
	return FragmentBounds(p.Text)
}

// Area returns a sub-page restricted to area: text fully inside it, and
// rulings that touch it clipped to its edges. The sub-page keeps the page
// number and the page dimensions.
func (p *Page) Area(area BBox) *Page {
	sub := NewPage(p.Number, p.Width, p.Height)
	sub.AddText(p.TextInArea(area)...)
	for _, r := range p.Rulings {
		if clipped, ok := r.Clip(area); ok && clipped.Length() > 0 {
			sub.Rulings = append(sub.Rulings, clipped)
		}
	}
	return sub
}

func bboxMin(b BBox) [2]float64 {
	return [2]float64{b.Left(), b.Top()}
}

func bboxMax(b BBox) [2]float64 {
	return [2]float64{b.Right(), b.Bottom()}
}
