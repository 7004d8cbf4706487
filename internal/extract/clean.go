package extract

import (
	"cardstats/internal/workbook"
	"cardstats/lib/textutil"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Row is a cleaned bank row. A nil metric means "not reported", which is
// distinct from a reported zero.
type Row struct {
	BankName               string
	CreditCardsOutstanding *float64
	DebitCardsOutstanding  *float64
}

var plainNumberRegex = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][-+]?\d+)?$`)

// ParseNumber coerces a cell to a number. Thousands separators and
// whitespace are dropped, then every character other than digits, a single
// leading minus sign and the first decimal point. Empty or unparsable cells
// yield nil.
func ParseNumber(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if plainNumberRegex.MatchString(cell) {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			// out of float64 range
			return nil
		}
		return &v
	}

	var out strings.Builder
	hasDigit := false
	hasPoint := false
	for _, r := range cell {
		switch {
		case r == ',' || unicode.IsSpace(r):
		case r >= '0' && r <= '9':
			hasDigit = true
			out.WriteRune(r)
		case r == '-' && out.Len() == 0:
			out.WriteRune(r)
		case r == '.' && !hasPoint:
			hasPoint = true
			out.WriteRune(r)
		}
	}
	if !hasDigit {
		return nil
	}
	v, err := strconv.ParseFloat(out.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}

var totalRegex = regexp.MustCompile(`(?i)\b(grand\s+total|total)\b`)

// IsTotal reports whether a bank name cell is a summary row.
func IsTotal(name string) bool {
	return totalRegex.MatchString(name)
}

// CleanRows turns the data rows (from `start` to the end of the table) into
// bank rows, keeping source order. Rows are dropped when the bank name is
// empty, when it is a total marker, or when both metrics are not reported.
func CleanRows(table workbook.Table, start, bankCol, creditCol, debitCol int) []Row {
	var rows []Row
	for i := max(start, 0); i < table.Len(); i++ {
		name := textutil.CollapseWhitespace(table.Cell(i, bankCol))
		if name == "" || IsTotal(name) {
			continue
		}

		row := Row{
			BankName:               name,
			CreditCardsOutstanding: ParseNumber(table.Cell(i, creditCol)),
			DebitCardsOutstanding:  ParseNumber(table.Cell(i, debitCol)),
		}
		if row.CreditCardsOutstanding == nil && row.DebitCardsOutstanding == nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
