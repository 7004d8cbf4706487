package extract

import (
	"cardstats/internal/workbook"
	"strings"
	"testing"
)

func FuzzFlattenHeader(f *testing.F) {
	f.Add("Sr. No|Bank Name|Credit Cards||Debit Cards", "||outstanding|outstanding|", 2)
	f.Add("a|a|a_1|", "", 3)
	f.Add("", "x", 1)

	f.Fuzz(func(t *testing.T, first, second string, depth int) {
		depth %= 4
		if depth < 0 {
			depth = -depth
		}
		depth++
		table := workbook.NewTable([][]string{
			strings.Split(first, "|"),
			strings.Split(second, "|"),
			{"data"},
		})

		columns := FlattenHeader(table, 0, depth)
		if len(columns) != table.Width() {
			t.Fatalf("got %d columns for a table of width %d", len(columns), table.Width())
		}
		seen := map[string]bool{}
		for _, c := range columns {
			if c == "" {
				t.Fatalf("empty column name in %v", columns)
			}
			if seen[c] {
				t.Fatalf("duplicate column %q in %v", c, columns)
			}
			seen[c] = true
		}
	})
}

func FuzzParseNumber(f *testing.F) {
	for _, seed := range []string{"1,234.5", "", "-", "12", "abc", "1.2E+07", "--5", "1.2.3"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, cell string) {
		v := ParseNumber(cell)
		if v == nil {
			return
		}
		if !strings.ContainsAny(cell, "0123456789") {
			t.Fatalf("%q has no digits but parsed to %v", cell, *v)
		}
	})
}
