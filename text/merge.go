package text

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/lattice/model"
)

// chunkGapFactor is the gap, in multiples of the font size, at which two
// fragments on one line stop belonging to the same chunk.
const chunkGapFactor = 1.5

// MergeWords groups fragments into lines and joins neighbouring fragments
// on each line into chunks. Lines come out top to bottom, and fragments
// within a line follow the line's reading direction. A space is inserted
// at word gaps; a gap wider than chunkGapFactor font sizes starts a new
// chunk. Chunk text is NFC-normalized and blank chunks are dropped.
func MergeWords(fragments []model.TextFragment) []model.TextChunk {
	if len(fragments) == 0 {
		return nil
	}

	var chunks []model.TextChunk
	for _, line := range groupByLine(fragments) {
		dir := lineDirection(line)
		ordered := orderForReading(line, dir)
		chunks = append(chunks, mergeLine(ordered, dir, measureLine(ordered, dir))...)
	}
	return chunks
}

// groupByLine sorts fragments top to bottom and starts a new line when a
// fragment's top moves by more than half the height of the line's first
// fragment.
func groupByLine(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := model.CompareRounded(sorted[i].BBox.Top(), sorted[j].BBox.Top()); c != 0 {
			return c < 0
		}
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})

	var lines [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	for _, frag := range sorted[1:] {
		first := current[0]
		if abs(frag.BBox.Top()-first.BBox.Top()) <= lineTolerance(first) {
			current = append(current, frag)
			continue
		}
		lines = append(lines, current)
		current = []model.TextFragment{frag}
	}
	return append(lines, current)
}

func lineTolerance(frag model.TextFragment) float64 {
	h := frag.BBox.Height
	if h <= 0 {
		h = frag.FontSize
	}
	if h <= 0 {
		return 1
	}
	return h * 0.5
}

// lineDirection is the dominant direction of the line's fragments;
// a line with no strong fragments reads LTR.
func lineDirection(fragments []model.TextFragment) Direction {
	ltrCount, rtlCount := 0, 0
	for _, frag := range fragments {
		switch DetectDirection(frag.Text) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}
	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

func orderForReading(fragments []model.TextFragment, dir Direction) []model.TextFragment {
	ordered := make([]model.TextFragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == RTL {
			return ordered[i].BBox.Left() > ordered[j].BBox.Left()
		}
		return ordered[i].BBox.Left() < ordered[j].BBox.Left()
	})
	return ordered
}

// horizontalGap is the distance from the end of frag to the start of next
// in reading order. Overlapping fragments give a negative gap.
func horizontalGap(frag, next model.TextFragment, dir Direction) float64 {
	if dir == RTL {
		return frag.BBox.Left() - next.BBox.Right()
	}
	return next.BBox.Left() - frag.BBox.Right()
}

// lineMetrics describes a line well enough to tell word gaps from
// letter spacing, both for word-level and per-glyph fragment streams.
type lineMetrics struct {
	isCharacterLevel  bool    // fragments average two runes or fewer
	hasExplicitSpaces bool    // some fragment is or contains a space
	medianGap         float64 // 10th percentile gap between non-space fragments
	typicalCharGap    float64 // 25th percentile gap
}

func measureLine(fragments []model.TextFragment, dir Direction) lineMetrics {
	var m lineMetrics
	if len(fragments) == 0 {
		return m
	}

	totalRunes := 0
	for _, frag := range fragments {
		totalRunes += len([]rune(frag.Text))
		if strings.TrimSpace(frag.Text) == "" || strings.Contains(frag.Text, " ") {
			m.hasExplicitSpaces = true
		}
	}
	m.isCharacterLevel = float64(totalRunes)/float64(len(fragments)) <= 2.0

	var gaps []float64
	for i := 0; i < len(fragments)-1; i++ {
		if strings.TrimSpace(fragments[i].Text) == "" || strings.TrimSpace(fragments[i+1].Text) == "" {
			continue
		}
		if gap := horizontalGap(fragments[i], fragments[i+1], dir); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) > 0 {
		sort.Float64s(gaps)
		m.medianGap = gaps[len(gaps)/10]
		m.typicalCharGap = gaps[len(gaps)/4]
	}
	return m
}

// fontSize falls back to the fragment height when the reader did not
// report a size.
func fontSize(frag model.TextFragment) float64 {
	if frag.FontSize > 0 {
		return frag.FontSize
	}
	return frag.BBox.Height
}

func shouldInsertSpace(frag, next model.TextFragment, gap float64, m lineMetrics) bool {
	if strings.HasSuffix(frag.Text, " ") || strings.HasPrefix(next.Text, " ") {
		return false
	}

	size := fontSize(frag)
	if gap < 0 || gap < size*0.05 {
		return false
	}

	// Explicit space glyphs mark word boundaries; only a gap far wider
	// than the usual letter spacing adds another.
	if m.isCharacterLevel && m.hasExplicitSpaces {
		if m.typicalCharGap > 0 {
			return gap >= m.typicalCharGap*5.0
		}
		return false
	}

	if m.isCharacterLevel {
		threshold := size * 0.8
		if m.medianGap > 0 {
			threshold = max(threshold, m.medianGap*3.0)
		}
		return gap >= threshold
	}

	// a space is roughly a quarter em wide
	return gap >= size*0.25*0.5
}

func mergeLine(fragments []model.TextFragment, dir Direction, m lineMetrics) []model.TextChunk {
	var (
		chunks  []model.TextChunk
		current []model.TextFragment
		sb      strings.Builder
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		bbox, _ := model.FragmentBounds(current)
		chunk := model.TextChunk{
			Text:      strings.TrimSpace(norm.NFC.String(sb.String())),
			BBox:      bbox,
			Fragments: current,
		}
		if !chunk.IsBlank() {
			chunks = append(chunks, chunk)
		}
		current = nil
		sb.Reset()
	}

	for i, frag := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			gap := horizontalGap(prev, frag, dir)
			switch {
			case gap > fontSize(prev)*chunkGapFactor:
				flush()
			case shouldInsertSpace(prev, frag, gap, m):
				sb.WriteString(" ")
			}
		}
		current = append(current, frag)
		sb.WriteString(frag.Text)
	}
	flush()

	return chunks
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
