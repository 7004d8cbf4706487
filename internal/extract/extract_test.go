package extract

import (
	"cardstats/internal/workbook"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	table := rbiLayout(
		[]string{"1", "State Bank of India", "1,95,00,000", "30,00,00,000", "65000", "1", "2", "3", "4"},
		[]string{"2", "HDFC Bank Ltd", "2,20,00,000", "5,00,00,000", "21000", "1", "2", "3", "4"},
		[]string{"", "Grand Total", "4,15,00,000", "35,00,00,000", "86000"},
	)

	result, err := Extract(context.Background(), table, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, result.HeaderRow)
	require.Equal(t, rbiColumns, result.Columns)
	require.Equal(t, 1, result.BankColumn.Index)
	require.Equal(t, 2, result.CreditColumn.Index)
	require.Equal(t, 3, result.DebitColumn.Index)

	require.Len(t, result.Rows, 2)
	require.Equal(t, "State Bank of India", result.Rows[0].BankName)
	require.Equal(t, 19500000.0, *result.Rows[0].CreditCardsOutstanding)
	require.Equal(t, 300000000.0, *result.Rows[0].DebitCardsOutstanding)
	require.Equal(t, "HDFC Bank Ltd", result.Rows[1].BankName)
}

func TestExtractFailures(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()

	_, err := Extract(ctx, workbook.NewTable([][]string{{"nothing here"}}), opts)
	require.True(t, errors.Is(err, ErrHeaderNotFound))

	table := workbook.NewTable([][]string{
		{"Bank Name", "Number of ATMs", "Credit Cards"},
		{"", "", ""},
		{"", "", ""},
		{"SBI", "10", "20"},
	})
	_, err = Extract(ctx, table, opts)
	require.ErrorIs(t, err, ErrColumnNotFound)
	require.ErrorContains(t, err, "debit_cards_outstanding")
}
