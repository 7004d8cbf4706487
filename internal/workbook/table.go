package workbook

import "strings"

// Table is a rectangular grid of raw cell text. Every row has Width() cells.
type Table struct {
	rows  [][]string
	width int
}

// NewTable pads ragged rows (spreadsheet readers drop trailing empty cells)
// to the widest row.
func NewTable(rows [][]string) Table {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, width)
		copy(padded[i], row)
	}
	return Table{rows: padded, width: width}
}

func (t Table) Len() int {
	return len(t.rows)
}

func (t Table) Width() int {
	return t.width
}

// Cell returns the trimmed text at (row, col), or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.width {
		return ""
	}
	return strings.TrimSpace(t.rows[row][col])
}

// Row returns the cells of a row, or nil when out of range.
func (t Table) Row(row int) []string {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row]
}

// Text joins the cells of the first `n` rows with spaces.
func (t Table) Text(n int) string {
	var out []string
	for i := 0; i < n && i < len(t.rows); i++ {
		for _, cell := range t.rows[i] {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				out = append(out, cell)
			}
		}
	}
	return strings.Join(out, " ")
}
