package testutil

import (
	"cardstats/lib/telemetry"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	_ "modernc.org/sqlite"
)

type ComponentParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ComponentResult struct {
	DB *sql.DB
}

// SetupComponent sets up telemetry for a test and, when a schema is given,
// an in-memory sqlite database with that schema applied.
func SetupComponent(t testing.TB, params ComponentParams) (ComponentResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))
	if params.DbSchema == "" {
		return ComponentResult{}, cleanup
	}

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: opens a new database
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ComponentResult{DB: sqlite}, func() {
		sqlite.Close()
		cleanup()
	}
}

// WriteWorkbook saves `rows` as the first sheet of a new xlsx file.
func WriteWorkbook(t testing.TB, path string, rows [][]any) {
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		err = f.SetSheetRow("Sheet1", cell, &row)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := f.SaveAs(path)
	if err != nil {
		t.Fatal(err)
	}
}

// BankRow is one data row of a synthetic statistics release.
type BankRow struct {
	Name   string
	Credit any
	Debit  any
}

// StatisticsRows lays out a synthetic bank-wise ATM/POS/card release: a
// title, a blank row, a 3 row header block (the "Bank Name" anchor is on the
// third row, index 2), then one row per bank.
func StatisticsRows(title string, banks []BankRow) [][]any {
	rows := [][]any{
		{title},
		{},
		{"Sr. No", "Bank Name", "Infrastructure as on month end", "", "", "Card Payments Transactions during the month"},
		{"", "", "Credit Cards", "Debit Cards", "Number of ATMs", "Credit Card at PoS", "", "Debit Card at PoS"},
		{"", "", "", "", "", "Volume", "Value (Rs '000)", "Volume", "Value (Rs '000)"},
	}
	for i, b := range banks {
		rows = append(rows, []any{i + 1, b.Name, b.Credit, b.Debit, 100, 10, 20, 30, 40})
	}
	return rows
}
