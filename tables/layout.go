package tables

import (
	"sort"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/text"
)

// cellTextSlack widens a cell to the right, as a fraction of its width,
// so a trailing glyph drawn over the border is still read.
const cellTextSlack = 0.01

func cellText(page *model.Page, cell model.BBox) []model.TextChunk {
	area := model.NewBBox(cell.X, cell.Y, cell.Width*(1+cellTextSlack), cell.Height)
	return text.MergeWords(page.TextInArea(area))
}

// layoutRows places cells on a grid whose rows are the distinct tops and
// whose columns are the distinct lefts of the cells. A cell spanning
// several row or column lines gets the matching RowSpan and ColSpan.
// Grid positions no cell starts at hold placeholder cells.
func layoutRows(cells []model.Cell) [][]model.Cell {
	if len(cells) == 0 {
		return nil
	}

	tops := distinctRounded(cells, func(b model.BBox) float64 { return b.Top() })
	lefts := distinctRounded(cells, func(b model.BBox) float64 { return b.Left() })

	rows := make([][]model.Cell, len(tops))
	filled := make([][]bool, len(tops))
	for i := range rows {
		rows[i] = make([]model.Cell, len(lefts))
		filled[i] = make([]bool, len(lefts))
		for j := range rows[i] {
			rows[i][j] = model.Cell{RowSpan: 1, ColSpan: 1}
		}
	}

	for _, c := range cells {
		r := indexOf(tops, c.BBox.Top())
		col := indexOf(lefts, c.BBox.Left())
		if filled[r][col] {
			continue
		}
		c.RowSpan = max(1, spanned(tops[r:], c.BBox.Bottom()))
		c.ColSpan = max(1, spanned(lefts[col:], c.BBox.Right()))
		rows[r][col] = c
		filled[r][col] = true
	}
	return rows
}

func distinctRounded(cells []model.Cell, edge func(model.BBox) float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, c := range cells {
		v := model.Round(edge(c.BBox))
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// indexOf finds v in the sorted, rounded lines.
func indexOf(lines []float64, v float64) int {
	return sort.SearchFloat64s(lines, model.Round(v))
}

// spanned counts the lines strictly before end.
func spanned(lines []float64, end float64) int {
	n := 0
	for _, l := range lines {
		if model.CompareRounded(l, end) >= 0 {
			break
		}
		n++
	}
	return n
}
