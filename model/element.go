package model

import "strings"

// TextFragment represents a positioned piece of text, typically a glyph
// or a run of glyphs produced by the document reader.
type TextFragment struct {
	Text     string
	BBox     BBox
	FontSize float64
	FontName string
}

// TextChunk is a word-level run of fragments on one line, produced by
// merging adjacent fragments.
type TextChunk struct {
	Text      string
	BBox      BBox
	Fragments []TextFragment
}

// IsBlank reports whether the chunk contains only whitespace.
func (c TextChunk) IsBlank() bool {
	return strings.TrimSpace(c.Text) == ""
}

// FragmentBounds returns the bounding box of fragments, and false when
// there are none.
func FragmentBounds(fragments []TextFragment) (BBox, bool) {
	boxes := make([]BBox, len(fragments))
	for i, f := range fragments {
		boxes[i] = f.BBox
	}
	return BoundsOf(boxes)
}
