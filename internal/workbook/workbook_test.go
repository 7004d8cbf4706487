package workbook

import (
	"cardstats/lib/testutil"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ATMSEPTEMBER2025.xlsx")
	testutil.WriteWorkbook(t, path, [][]any{
		{"Bank-wise ATM/POS/Card Statistics"},
		{"Sr. No", "Bank Name", "Credit Cards"},
		{1, "Axis Bank", 1500},
	})

	table, err := Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 3, table.Len())
	require.Equal(t, 3, table.Width())
	require.Equal(t, "", table.Cell(0, 2), "ragged rows are padded")
	require.Equal(t, "Axis Bank", table.Cell(2, 1))
	require.Equal(t, "1500", table.Cell(2, 2))
	require.Equal(t, "", table.Cell(10, 10))
}

func TestSniff(t *testing.T) {
	dir := t.TempDir()

	_, err := Sniff(filepath.Join(dir, "missing.xlsx"))
	require.ErrorIs(t, err, ErrMissingInput)

	htmlPath := filepath.Join(dir, "ATMAUGUST2025.xlsx")
	err = os.WriteFile(htmlPath, []byte("<!DOCTYPE html><html>Access Denied</html>"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Sniff(htmlPath)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Open(context.Background(), htmlPath)
	require.ErrorIs(t, err, ErrInvalidFormat)

	tinyPath := filepath.Join(dir, "tiny.xlsx")
	err = os.WriteFile(tinyPath, []byte("PK"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Sniff(tinyPath)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDetectFormat(t *testing.T) {
	require.Equal(t, FormatXLSX, DetectFormat([]byte("PK\x03\x04rest")))
	require.Equal(t, FormatXLS, DetectFormat([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1}))
	require.Equal(t, FormatUnknown, DetectFormat([]byte("<htm")))
	require.Equal(t, FormatUnknown, DetectFormat(nil))
}

func TestTableText(t *testing.T) {
	table := NewTable([][]string{
		{"", "Bank-wise statistics for the Month of September 2025"},
		{"  "},
		{"Bank Name"},
	})
	require.Equal(t, "Bank-wise statistics for the Month of September 2025", table.Text(2))
}
