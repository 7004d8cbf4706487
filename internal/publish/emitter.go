// Package publish writes the JSON artifacts consumed by the static site:
// the bank catalog, one file per month and the index of months.
package publish

import (
	"cardstats/internal/catalog"
	"cardstats/internal/extract"
	"cardstats/internal/mirror"
	"cardstats/internal/period"
	"cardstats/internal/telemetry"
	"cardstats/internal/workbook"
	"cardstats/lib/fsutil"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cardstats.internal.publish")

const (
	BanksFile = "banks.json"
	IndexFile = "index.json"
)

// MonthFile is the name of a month file relative to the output root.
func MonthFile(p period.Period) string {
	return p.Key() + ".json"
}

// MonthlyRecord is one bank's figures for a month. A nil metric was not
// reported.
type MonthlyRecord struct {
	BankID                 int      `json:"bank_id"`
	Year                   int      `json:"year"`
	Month                  int      `json:"month"`
	CreditCardsOutstanding *float64 `json:"credit_cards_outstanding"`
	DebitCardsOutstanding  *float64 `json:"debit_cards_outstanding"`
}

type Emitter struct {
	OutputDir string
	Options   extract.Options
	Aliases   catalog.Aliases
	// optional, months are also written to the mirror when set
	Mirror *mirror.Store

	base telemetry.API
	tel  telemetry.API
}

func NewEmitter(outputDir string, opts extract.Options, aliases catalog.Aliases, tel telemetry.API) *Emitter {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Emitter{
		OutputDir: outputDir,
		Options:   opts,
		Aliases:   aliases,
		base:      tel,
		tel:       telemetry.Scoped("emitter", tel),
	}
}

type Summary struct {
	Period   period.Period
	Path     string
	Records  int
	NewBanks []catalog.Bank
	Columns  extract.Result
}

// EmitMonth extracts the workbook at `path` and publishes it as the given
// month: new banks are merged into the catalog, the month file is replaced
// wholesale and the index entry is upserted, in that order, so a month file
// never refers to an id missing from the catalog. Nothing is written unless
// the workbook extracts successfully, and re-emitting the same month with the
// same input leaves every artifact unchanged.
//
// The mirror is secondary: once the JSON artifacts are published a mirror
// failure is reported as `emitter:mirror` and does not fail the emit.
func (e *Emitter) EmitMonth(ctx context.Context, path string, year, month int) (Summary, error) {
	ctx, span := tracer.Start(ctx, "EmitMonth")
	defer span.End()
	span.SetAttributes(
		attribute.String("path", path),
		attribute.Int("year", year),
		attribute.Int("month", month),
	)

	p := period.Period{Year: year, Month: month}
	ctx = telemetry.WithAttrs(ctx, "period", p.Key())
	summary, err := e.emitMonth(ctx, path, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to emit month")
		return Summary{}, err
	}
	return summary, nil
}

func (e *Emitter) emitMonth(ctx context.Context, path string, p period.Period) (Summary, error) {
	if !p.Valid() {
		return Summary{}, fmt.Errorf("%w: %s", period.ErrUnresolvable, p)
	}

	table, err := workbook.Open(ctx, path)
	if err != nil {
		return Summary{}, err
	}
	result, err := extract.Extract(ctx, table, e.Options)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	banksPath := filepath.Join(e.OutputDir, BanksFile)
	indexPath := filepath.Join(e.OutputDir, IndexFile)
	monthName := MonthFile(p)

	cat, err := catalog.Load(banksPath, e.Aliases, e.base)
	if err != nil {
		return Summary{}, err
	}
	index, err := LoadIndex(indexPath)
	if err != nil {
		return Summary{}, err
	}

	records := e.buildRecords(ctx, cat, result.Rows, p)

	err = cat.Save(banksPath)
	if err != nil {
		return Summary{}, err
	}
	err = fsutil.WriteJSON(filepath.Join(e.OutputDir, monthName), records)
	if err != nil {
		return Summary{}, err
	}
	err = index.Upsert(IndexEntry{
		Year:    p.Year,
		Month:   p.Month,
		Path:    monthName,
		Source:  filepath.Base(path),
		Columns: columnsUsed(result),
	}).Save(indexPath)
	if err != nil {
		return Summary{}, err
	}

	if e.Mirror != nil {
		err = e.Mirror.ReplaceMonth(ctx, mirrorMonth(cat, records, p))
		if err != nil {
			e.tel.ReportBroken(ctx, "mirror", "err", err)
		}
	}

	slog.DebugContext(
		ctx, "emitted month",
		"period", p.Key(),
		"records", len(records),
		"new_banks", len(cat.Added()),
		"bank_column", result.BankColumn.Name,
		"credit_column", result.CreditColumn.Name,
		"debit_column", result.DebitColumn.Name,
	)

	return Summary{
		Period:   p,
		Path:     monthName,
		Records:  len(records),
		NewBanks: cat.Added(),
		Columns:  result,
	}, nil
}

func (e *Emitter) buildRecords(ctx context.Context, cat *catalog.Catalog, rows []extract.Row, p period.Period) []MonthlyRecord {
	records := make([]MonthlyRecord, 0, len(rows))
	seen := make(map[int]string, len(rows))
	for _, row := range rows {
		id, _ := cat.Resolve(ctx, row.BankName)
		if first, dup := seen[id]; dup {
			e.tel.ReportWarning(ctx, "duplicate-bank", "bank_id", id, "kept", first, "dropped", row.BankName)
			continue
		}
		seen[id] = row.BankName

		records = append(records, MonthlyRecord{
			BankID:                 id,
			Year:                   p.Year,
			Month:                  p.Month,
			CreditCardsOutstanding: row.CreditCardsOutstanding,
			DebitCardsOutstanding:  row.DebitCardsOutstanding,
		})
	}
	e.tel.ReportCount(ctx, "records", int64(len(records)), "{record}")
	return records
}

func mirrorMonth(cat *catalog.Catalog, records []MonthlyRecord, p period.Period) mirror.Month {
	m := mirror.Month{Year: p.Year, Month: p.Month}
	for _, b := range cat.Banks() {
		m.Banks = append(m.Banks, mirror.Bank{ID: b.ID, Name: b.Name})
	}
	for _, r := range records {
		m.Records = append(m.Records, mirror.Record{
			BankID:                 r.BankID,
			CreditCardsOutstanding: r.CreditCardsOutstanding,
			DebitCardsOutstanding:  r.DebitCardsOutstanding,
		})
	}
	return m
}
