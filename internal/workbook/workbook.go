// Package workbook reads the first worksheet of a spreadsheet into an
// untyped grid of cell text, with no header interpretation.
package workbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cardstats.internal.workbook")

var (
	ErrMissingInput  = errors.New("input file does not exist")
	ErrInvalidFormat = errors.New("not a spreadsheet")
)

type Format int

const (
	FormatUnknown Format = iota
	// FormatXLSX is the zip based OOXML container.
	FormatXLSX
	// FormatXLS is the legacy OLE2 compound document.
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "unknown"
	}
}

var (
	zipSignature  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// DetectFormat checks the leading signature bytes of a file.
func DetectFormat(head []byte) Format {
	if len(head) < 4 {
		return FormatUnknown
	}
	if bytes.Equal(head[:4], zipSignature) {
		return FormatXLSX
	}
	if bytes.Equal(head[:4], ole2Signature) {
		return FormatXLS
	}
	return FormatUnknown
}

// Sniff returns the container format of the file at `path`. It fails with
// ErrMissingInput if the file is absent and ErrInvalidFormat if the first
// 4 bytes are not a known spreadsheet signature (ex. an HTML error page
// saved in place of the document).
func Sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	head := make([]byte, 4)
	_, err = io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}

	format := DetectFormat(head)
	if format == FormatUnknown {
		return FormatUnknown, fmt.Errorf("%w: %s starts with %q", ErrInvalidFormat, path, head)
	}
	return format, nil
}

// Open parses the first worksheet of the spreadsheet at `path`.
func Open(ctx context.Context, path string) (Table, error) {
	_, span := tracer.Start(ctx, "Open")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	format, err := Sniff(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sniff format")
		return Table{}, err
	}
	span.SetAttributes(attribute.String("format", format.String()))

	var rows [][]string
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(path)
	case FormatXLS:
		rows, err = readXLS(path)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read worksheet")
		return Table{}, fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path, err)
	}

	table := NewTable(rows)
	span.SetAttributes(
		attribute.Int("rows", table.Len()),
		attribute.Int("columns", table.Width()),
	)
	return table, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	return f.GetRows(sheets[0])
}

func readXLS(path string) ([][]string, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, err
	}
	sheet, err := book.GetSheet(0)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, col := range row.GetCols() {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
