package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	WriteWorkbook(t, path, StatisticsRows("title", []BankRow{
		{Name: "Axis Bank", Credit: 10, Debit: "1,000"},
	}))

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, rows, 6)
	require.Equal(t, "Bank Name", rows[2][1])
	require.Equal(t, "Axis Bank", rows[5][1])
	require.Equal(t, "1,000", rows[5][3])
}

func TestSetupComponent(t *testing.T) {
	res, cleanup := SetupComponent(t, ComponentParams{
		Name:     "testutil",
		DbSchema: "create table t (x integer);",
	})
	defer cleanup()

	_, err := res.DB.Exec("insert into t (x) values (1)")
	if err != nil {
		t.Fatal(err)
	}
}
