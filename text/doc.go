// Package text merges positioned text fragments into word-level chunks.
//
// Document readers emit text in pieces that range from whole lines down to
// single glyphs. [MergeWords] groups fragments into lines, orders each
// line in its reading direction and joins neighbouring fragments:
//
//	chunks := text.MergeWords(page.TextInArea(cell.BBox))
//
// # Smart Spacing
//
// Spaces are inferred from gaps between fragments:
//
//   - Word-level fragments: a gap of half a nominal space (a quarter em)
//   - Per-glyph fragments: a gap well above the line's typical letter spacing
//   - Explicit spaces: respected, never doubled
//
// A gap wider than one and a half em starts a new chunk.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// [GetCharDirection] classifies runes by their Unicode bidirectional class
// and [DetectDirection] returns the dominant direction of a string.
package text
