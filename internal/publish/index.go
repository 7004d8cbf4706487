package publish

import (
	"cardstats/internal/extract"
	"cardstats/internal/period"
	"cardstats/lib/fsutil"
	"slices"
)

// IndexEntry points at a month file, `path` is relative to the output root.
// Source and Columns record where the month's figures were read from, they
// are absent in entries written before provenance was tracked.
type IndexEntry struct {
	Year    int          `json:"year"`
	Month   int          `json:"month"`
	Path    string       `json:"path"`
	Source  string       `json:"source,omitempty"`
	Columns *ColumnsUsed `json:"columns_used,omitempty"`
}

// ColumnsUsed holds the flattened header names the month was extracted from.
type ColumnsUsed struct {
	BankName               string `json:"bank_name"`
	CreditCardsOutstanding string `json:"credit_cards_outstanding"`
	DebitCardsOutstanding  string `json:"debit_cards_outstanding"`
}

func columnsUsed(result extract.Result) *ColumnsUsed {
	return &ColumnsUsed{
		BankName:               result.BankColumn.Name,
		CreditCardsOutstanding: result.CreditColumn.Name,
		DebitCardsOutstanding:  result.DebitColumn.Name,
	}
}

func (e IndexEntry) Period() period.Period {
	return period.Period{Year: e.Year, Month: e.Month}
}

type Index []IndexEntry

func LoadIndex(path string) (Index, error) {
	var index Index
	_, err := fsutil.ReadJSON(path, &index)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// Upsert inserts the entry when no entry with the same path exists, or
// replaces the existing one, then sorts the index by (year, month).
func (idx Index) Upsert(entry IndexEntry) Index {
	out := slices.Clone(idx)
	found := false
	for i, e := range out {
		if e.Path == entry.Path {
			out[i] = entry
			found = true
		}
	}
	if !found {
		out = append(out, entry)
	}
	slices.SortStableFunc(out, func(a, b IndexEntry) int {
		return a.Period().Compare(b.Period())
	})
	return out
}

func (idx Index) Save(path string) error {
	if idx == nil {
		idx = Index{}
	}
	return fsutil.WriteJSON(path, idx)
}
