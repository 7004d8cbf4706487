package extract

import (
	"cardstats/internal/workbook"
	"cardstats/lib/textutil"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var ErrHeaderNotFound = errors.New("header row not found")

// LocateHeader returns the 0-based index of the first row in the first
// `previewRows` rows that contains a cell matching one of the anchors.
// Anchors are tried in priority order: every row of the window is checked
// against the first anchor before the second one is considered.
func LocateHeader(ctx context.Context, table workbook.Table, previewRows int, anchors []*regexp.Regexp) (int, error) {
	_, span := tracer.Start(ctx, "LocateHeader")
	defer span.End()

	window := min(previewRows, table.Len())
	for _, anchor := range anchors {
		for row := 0; row < window; row++ {
			for col := 0; col < table.Width(); col++ {
				cell := textutil.CollapseWhitespace(table.Cell(row, col))
				if cell != "" && anchor.MatchString(cell) {
					span.SetAttributes(
						attribute.Int("row", row),
						attribute.String("anchor", anchor.String()),
					)
					return row, nil
				}
			}
		}
	}
	return -1, fmt.Errorf("%w in the first %d rows", ErrHeaderNotFound, window)
}

// FlattenHeader synthesizes one name per table column from `depth` header
// rows starting at `start`:
//  1. each header row is forward-filled to the right across the full table
//     width, approximating merged cells that span several columns,
//  2. the non-empty values of a column are joined top to bottom,
//  3. the result is normalized into a lowercase underscored identifier,
//  4. duplicates get `_1`, `_2`, ... suffixes.
//
// Columns left of every header label are named `col_<i>`. The output always
// has table.Width() unique names.
func FlattenHeader(table workbook.Table, start, depth int) []string {
	width := table.Width()
	parts := make([][]string, width)
	for row := start; row < start+depth; row++ {
		last := ""
		for col := 0; col < width; col++ {
			value := textutil.CollapseWhitespace(table.Cell(row, col))
			if value == "" {
				value = last
			} else {
				last = value
			}
			if value != "" {
				parts[col] = append(parts[col], value)
			}
		}
	}

	names := make([]string, width)
	for col := range names {
		name := textutil.Identifier(strings.Join(parts[col], " "))
		if name == "" {
			name = fmt.Sprintf("col_%d", col)
		}
		names[col] = name
	}

	return dedupe(FitColumns(names, width))
}

// FitColumns pads `names` with `extra_col_<i>` or truncates it to `width`.
func FitColumns(names []string, width int) []string {
	if len(names) >= width {
		return names[:width]
	}
	out := make([]string, width)
	copy(out, names)
	for i := len(names); i < width; i++ {
		out[i] = fmt.Sprintf("extra_col_%d", i-len(names))
	}
	return out
}

func dedupe(names []string) []string {
	used := make(map[string]bool, len(names))
	for _, name := range names {
		used[name] = true
	}

	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			out[i] = name
			continue
		}
		candidate := fmt.Sprintf("%s_%d", name, n)
		for used[candidate] {
			n++
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		seen[name] = n + 1
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
