// Package extract turns a raw worksheet into cleaned per-bank rows: it
// locates the multi-row header block, flattens it into column names, picks
// the bank name / credit card / debit card columns by pattern scoring and
// coerces their values.
package extract

import (
	"cardstats/internal/workbook"
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cardstats.internal.extract")

type Result struct {
	HeaderRow int
	Columns   []string

	BankColumn   Candidate
	CreditColumn Candidate
	DebitColumn  Candidate

	Rows []Row
}

// Header locates and flattens the header block.
func Header(ctx context.Context, table workbook.Table, opts Options) (int, []string, error) {
	start, err := LocateHeader(ctx, table, opts.PreviewRows, opts.Anchors)
	if err != nil {
		return -1, nil, err
	}
	return start, FlattenHeader(table, start, opts.HeaderDepth), nil
}

func Extract(ctx context.Context, table workbook.Table, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	start, columns, err := Header(ctx, table, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate header")
		return Result{}, err
	}

	bank, err := SelectColumn(columns, opts.Bank)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select bank column")
		return Result{}, err
	}
	credit, err := SelectColumn(columns, opts.Credit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select credit column")
		return Result{}, err
	}
	debit, err := SelectColumn(columns, opts.Debit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select debit column")
		return Result{}, err
	}

	rows := CleanRows(table, start+opts.HeaderDepth, bank.Index, credit.Index, debit.Index)
	span.SetAttributes(
		attribute.Int("header_row", start),
		attribute.String("bank_column", bank.Name),
		attribute.String("credit_column", credit.Name),
		attribute.String("debit_column", debit.Name),
		attribute.Int("rows", len(rows)),
	)

	return Result{
		HeaderRow:    start,
		Columns:      columns,
		BankColumn:   bank,
		CreditColumn: credit,
		DebitColumn:  debit,
		Rows:         rows,
	}, nil
}
