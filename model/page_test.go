package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragment(text string, x, y, w, h float64) TextFragment {
	return TextFragment{Text: text, BBox: NewBBox(x, y, w, h), FontSize: h}
}

func TestPageTextInArea(t *testing.T) {
	page := NewPage(1, 200, 200)
	page.AddText(
		fragment("a", 10, 10, 5, 10),
		fragment("b", 30, 10, 5, 10),
		fragment("c", 95, 10, 10, 10), // straddles x=100
		fragment("d", 150, 150, 5, 10),
	)

	got := page.TextInArea(NewBBox(0, 0, 100, 100))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)

	assert.Empty(t, page.TextInArea(NewBBox(300, 300, 10, 10)))
}

func TestPageTextInAreaWithoutIndex(t *testing.T) {
	page := &Page{Text: []TextFragment{fragment("x", 10, 10, 5, 10)}}

	got := page.TextInArea(NewBBox(0, 0, 50, 50))
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Text)
}

func TestPageTextBounds(t *testing.T) {
	page := NewPage(1, 200, 200)
	_, ok := page.TextBounds()
	assert.False(t, ok)

	page.AddText(fragment("a", 10, 20, 5, 10), fragment("b", 100, 150, 20, 10))
	bounds, ok := page.TextBounds()
	require.True(t, ok)
	assert.Equal(t, NewBBoxFromEdges(10, 20, 120, 160), bounds)
}

func TestPageArea(t *testing.T) {
	page := NewPage(3, 200, 200)
	page.AddText(fragment("in", 20, 20, 10, 10), fragment("out", 150, 150, 10, 10))
	page.AddRuling(
		NewRuling(0, 50, 200, 50),   // crosses the area
		NewRuling(150, 0, 150, 200), // outside
		NewRuling(10, 10, 10, 60),   // inside
	)

	sub := page.Area(NewBBox(0, 0, 100, 100))

	assert.Equal(t, 3, sub.Number)
	require.Len(t, sub.Text, 1)
	assert.Equal(t, "in", sub.Text[0].Text)
	require.Len(t, sub.Rulings, 2)
	assert.InDelta(t, 100, sub.Rulings[0].End.X, 1e-9)
	assert.Len(t, sub.TextInArea(NewBBox(0, 0, 100, 100)), 1)
}
