package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction represents the writing direction of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, whitespace.
	Neutral
)

// String returns "LTR", "RTL" or "Neutral".
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection counts strong directional characters in text and returns
// the dominant direction, or Neutral if there are none. Ties go to LTR.
func DetectDirection(text string) Direction {
	ltrCount, rtlCount := 0, 0
	for _, r := range text {
		switch GetCharDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	switch {
	case ltrCount == 0 && rtlCount == 0:
		return Neutral
	case rtlCount > ltrCount:
		return RTL
	default:
		return LTR
	}
}

// GetCharDirection returns the inherent direction of r from its Unicode
// bidirectional class. Only strong classes are directional: L is LTR,
// R and AL are RTL, everything else (digits, separators, marks) is Neutral.
func GetCharDirection(r rune) Direction {
	props, size := bidi.LookupRune(r)
	if size == 0 {
		return Neutral
	}
	switch props.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}
