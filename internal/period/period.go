// Package period infers the (year, month) a statistics release covers,
// either from its file name or from the title rows of the worksheet.
package period

import (
	"cardstats/internal/workbook"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrUnresolvable = errors.New("year/month could not be resolved")

type Period struct {
	Year  int
	Month int
}

func (p Period) Valid() bool {
	return p.Year >= 1990 && p.Year <= 2100 && p.Month >= 1 && p.Month <= 12
}

// Key is the month file stem, ex. "2025-09".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) String() string {
	return p.Key()
}

// Compare orders periods chronologically.
func (p Period) Compare(other Period) int {
	if p.Year != other.Year {
		return p.Year - other.Year
	}
	return p.Month - other.Month
}

var months = map[string]int{
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "MAY": 5, "JUNE": 6,
	"JULY": 7, "AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10, "NOVEMBER": 11, "DECEMBER": 12,
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "JUN": 6, "JUL": 7,
	"AUG": 8, "SEPT": 9, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// full names come first so that the regexp (leftmost-first) prefers them
// over their abbreviations
const monthAlternation = `JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER|` +
	`JAN|FEB|MAR|APR|JUN|JUL|AUG|SEPT|SEP|OCT|NOV|DEC`

var filenameRegex = regexp.MustCompile(`(` + monthAlternation + `)[\s_\-.,]*(\d{4,8})`)
var documentRegex = regexp.MustCompile(`MONTH\s+OF\s+(` + monthAlternation + `)[A-Z]*[\s,\-]+(\d{4})`)

// FromFilename infers the period from names like "ATMSEPTEMBER2025.xlsx",
// "ATM_Sept_2025.xlsx" or "ATMMAY23062025.xlsx" (a DDMMYYYY publication
// date after the month name, the year is then the last four digits).
func FromFilename(name string) (Period, error) {
	upper := strings.ToUpper(name)
	for _, match := range filenameRegex.FindAllStringSubmatch(upper, -1) {
		digits := match[2]
		yearDigits := digits[:4]
		if len(digits) == 8 {
			yearDigits = digits[4:]
		}
		year, err := strconv.Atoi(yearDigits)
		if err != nil {
			continue
		}
		p := Period{Year: year, Month: months[match[1]]}
		if p.Valid() {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("%w: no month name and year in file name %q", ErrUnresolvable, name)
}

// FromTable looks for "Month of <MonthName> <Year>" in the first `rows` rows.
func FromTable(table workbook.Table, rows int) (Period, error) {
	text := strings.ToUpper(table.Text(rows))
	match := documentRegex.FindStringSubmatch(text)
	if match == nil {
		return Period{}, fmt.Errorf("%w: no \"month of\" title in the first %d rows", ErrUnresolvable, rows)
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %w", ErrUnresolvable, err)
	}
	p := Period{Year: year, Month: months[match[1]]}
	if !p.Valid() {
		return Period{}, fmt.Errorf("%w: %d-%d is out of range", ErrUnresolvable, p.Year, p.Month)
	}
	return p, nil
}
