package extract

import (
	"cardstats/internal/workbook"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		cell     string
		expected *float64
	}{
		{cell: "1,234.5", expected: ptr(1234.5)},
		{cell: "12", expected: ptr(12)},
		{cell: " 1 234 567 ", expected: ptr(1234567)},
		{cell: "-42", expected: ptr(-42)},
		{cell: "1.2E+07", expected: ptr(12000000)},
		{cell: "0", expected: ptr(0)},
		{cell: "12.5.3", expected: ptr(12.53)},
		{cell: "", expected: nil},
		{cell: "-", expected: nil},
		{cell: "abc", expected: nil},
		{cell: "N.A.", expected: nil},
		{cell: "1e400", expected: nil},
		{cell: "-1E+400", expected: nil},
	}
	for _, c := range cases {
		actual := ParseNumber(c.cell)
		if c.expected == nil {
			require.Nil(t, actual, "cell %q", c.cell)
			continue
		}
		require.NotNil(t, actual, "cell %q", c.cell)
		require.InDelta(t, *c.expected, *actual, 1e-9, "cell %q", c.cell)
	}
}

func TestIsTotal(t *testing.T) {
	require.True(t, IsTotal("Grand Total"))
	require.True(t, IsTotal("TOTAL"))
	require.True(t, IsTotal("Sub total (Public Sector Banks)"))
	require.False(t, IsTotal("Totalbank Ltd"))
	require.False(t, IsTotal("HDFC Bank"))
}

func TestCleanRows(t *testing.T) {
	table := workbook.NewTable([][]string{
		{"Bank Name", "Credit", "Debit"},
		{"State Bank  of\nIndia", "1,000", "2,000"},
		{"", "5", "6"},
		{"Grand Total", "1,005", "2,006"},
		{"Nodata Bank", "-", ""},
		{"Debit Only Bank", "", "300"},
		{"Zero Bank", "0", "0"},
	})

	rows := CleanRows(table, 1, 0, 1, 2)
	require.Len(t, rows, 3)

	require.Equal(t, "State Bank of India", rows[0].BankName)
	require.Equal(t, 1000.0, *rows[0].CreditCardsOutstanding)
	require.Equal(t, 2000.0, *rows[0].DebitCardsOutstanding)

	require.Equal(t, "Debit Only Bank", rows[1].BankName)
	require.Nil(t, rows[1].CreditCardsOutstanding)
	require.Equal(t, 300.0, *rows[1].DebitCardsOutstanding)

	require.Equal(t, "Zero Bank", rows[2].BankName)
	require.Equal(t, 0.0, *rows[2].CreditCardsOutstanding)
}

func ptr(v float64) *float64 {
	return &v
}
