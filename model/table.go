package model

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is one detected table region: its bounding rectangle, the cells and
// rulings that intersect it, and the cells laid out in rows and columns.
type Table struct {
	BBox       BBox
	Rows       [][]Cell
	Cells      []Cell   // Cells intersecting the region, in reading order
	PageNumber int      // Number of the page the table was found on
	Algorithm  string   // Name of the detector that produced the table
	HasGrid    bool     // Whether table has visible gridlines
	Confidence float64  // Detection confidence (0-1)
	Horizontal []Ruling // Horizontal rulings intersecting the region
	Vertical   []Ruling // Vertical rulings intersecting the region
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:       make([][]Cell, rows),
		Confidence: 1.0,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = Cell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the widest row
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = cell
	return nil
}

// GetText returns the table text, tab-separated by column and
// newline-separated by row.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []Cell) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell.Text, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for range t.Rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToHTML renders the table as an HTML <table> element. Cells with a span
// greater than one get rowspan/colspan attributes.
func (t *Table) ToHTML() (string, error) {
	table := element(atom.Table)
	body := element(atom.Tbody)
	table.AppendChild(body)

	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			tag := atom.Td
			if cell.IsHeader {
				tag = atom.Th
			}
			td := element(tag)
			if cell.RowSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: fmt.Sprint(cell.RowSpan)})
			}
			if cell.ColSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: fmt.Sprint(cell.ColSpan)})
			}
			if cell.Text != "" {
				td.AppendChild(&html.Node{Type: html.TextNode, Data: cell.Text})
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}

	var sb strings.Builder
	if err := html.Render(&sb, table); err != nil {
		return "", fmt.Errorf("rendering table: %w", err)
	}
	return sb.String(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// Cell represents a table cell. A cell produced to fill a gap in a row is
// indistinguishable from one bounded by rulings.
type Cell struct {
	BBox     BBox
	Text     string
	Chunks   []TextChunk
	RowSpan  int
	ColSpan  int
	IsHeader bool
}

// NewCell creates a cell covering bbox.
func NewCell(bbox BBox) Cell {
	return Cell{BBox: bbox, RowSpan: 1, ColSpan: 1}
}

// IsEmpty reports whether the cell has no area.
func (c Cell) IsEmpty() bool {
	return c.BBox.IsEmpty()
}

// IsPlaceholder reports whether the cell is a filler with no geometry and
// no text, as used for holes in Table.Rows.
func (c Cell) IsPlaceholder() bool {
	return c.BBox == (BBox{}) && c.Text == "" && len(c.Chunks) == 0
}

// SetChunks attaches chunks to the cell and rebuilds its text. Chunks on
// the same line are joined by a space, lines by a newline.
func (c *Cell) SetChunks(chunks []TextChunk) {
	c.Chunks = chunks
	var sb strings.Builder
	for i, ch := range chunks {
		if i > 0 {
			prev := chunks[i-1].BBox
			if ch.BBox.VerticalOverlap(prev) > 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(ch.Text)
	}
	c.Text = strings.TrimSpace(sb.String())
}
