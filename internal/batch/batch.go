// Package batch emits every document listed in a manifest, skipping the
// ones that cannot be published and reporting why.
package batch

import (
	"cardstats/internal/manifest"
	"cardstats/internal/period"
	"cardstats/internal/publish"
	"cardstats/internal/telemetry"
	"cardstats/internal/workbook"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("cardstats.internal.batch")
var meter = otel.Meter("cardstats.internal.batch")

// Outcome is the result of one manifest entry. Reason is empty when the
// entry was emitted.
type Outcome struct {
	Entry  manifest.Entry
	Line   int
	Period period.Period
	Reason string
	Err    error
}

type Report struct {
	RunID    string
	Emitted  int
	Skipped  int
	Outcomes []Outcome
}

type Runner struct {
	emitter     *publish.Emitter
	out         io.Writer
	previewRows int

	emittedCounter metric.Int64Counter
	skippedCounter metric.Int64Counter
}

// NewRunner creates a runner printing its progress lines to `out`,
// `previewRows` bounds the search for an in-document period title.
func NewRunner(emitter *publish.Emitter, out io.Writer, previewRows int) (*Runner, error) {
	if out == nil {
		out = os.Stdout
	}
	emittedCounter, err := meter.Int64Counter(
		"cardstats.batch.emitted",
		metric.WithDescription("The amount of manifest entries emitted as a month."),
	)
	if err != nil {
		return nil, err
	}
	skippedCounter, err := meter.Int64Counter(
		"cardstats.batch.skipped",
		metric.WithDescription("The amount of manifest entries skipped."),
	)
	if err != nil {
		return nil, err
	}
	return &Runner{
		emitter:        emitter,
		out:            out,
		previewRows:    previewRows,
		emittedCounter: emittedCounter,
		skippedCounter: skippedCounter,
	}, nil
}

// Run processes the manifest entries one after the other. Only a missing or
// unreadable manifest (or a cancelled context) is returned as an error,
// every per-entry failure is a skip recorded in the report.
func (r *Runner) Run(ctx context.Context, manifestPath string) (Report, error) {
	runID, err := random.String(8)
	if err != nil {
		return Report{}, err
	}
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	log := slog.With("run_id", runID)
	ctx = telemetry.WithAttrs(ctx, "run_id", runID)

	entries, lineErrs, err := manifest.Read(manifestPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read manifest")
		return Report{}, err
	}
	log.InfoContext(ctx, "starting batch", "manifest", manifestPath, "entries", len(entries))

	report := Report{RunID: runID}
	for _, lineErr := range lineErrs {
		r.record(ctx, &report, Outcome{
			Line:   lineErr.Line,
			Reason: ReasonInvalidManifestLine,
			Err:    lineErr,
		})
	}

	for _, entry := range entries {
		err := ctx.Err()
		if err != nil {
			return report, err
		}
		r.record(ctx, &report, r.process(ctx, log, entry))
	}

	fmt.Fprintf(r.out, "Emitted: %d; Skipped: %d\n", report.Emitted, report.Skipped)
	span.SetAttributes(
		attribute.Int("emitted", report.Emitted),
		attribute.Int("skipped", report.Skipped),
	)
	return report, nil
}

func (r *Runner) record(ctx context.Context, report *Report, outcome Outcome) {
	report.Outcomes = append(report.Outcomes, outcome)

	if outcome.Reason == "" {
		report.Emitted++
		r.emittedCounter.Add(ctx, 1)
		fmt.Fprintf(r.out, "Emitted: %s -> %s\n", outcome.Entry.Path, outcome.Period)
		return
	}

	report.Skipped++
	r.skippedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", outcome.Reason)))
	if outcome.Entry.Path == "" {
		fmt.Fprintf(r.out, "Skipping (%s): %v\n", outcome.Reason, outcome.Err)
		return
	}
	fmt.Fprintf(r.out, "Skipping (%s): %s: %v\n", outcome.Reason, outcome.Entry.Path, outcome.Err)
}

func (r *Runner) process(ctx context.Context, log *slog.Logger, entry manifest.Entry) Outcome {
	ctx, span := tracer.Start(ctx, "process")
	defer span.End()
	span.SetAttributes(attribute.String("path", entry.Path))

	outcome := r.resolveAndEmit(ctx, entry)
	if outcome.Reason != "" {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Reason)
		log.DebugContext(ctx, "skipped entry", "path", entry.Path, "reason", outcome.Reason, "err", outcome.Err)
	}
	return outcome
}

func (r *Runner) resolveAndEmit(ctx context.Context, entry manifest.Entry) Outcome {
	skip := func(err error) Outcome {
		return Outcome{Entry: entry, Reason: Reason(err), Err: err}
	}

	_, err := os.Stat(entry.Path)
	if errors.Is(err, os.ErrNotExist) {
		return skip(fmt.Errorf("%w: %w", workbook.ErrMissingInput, err))
	}
	if err != nil {
		return skip(err)
	}

	p, known := entryPeriod(entry)
	if known && !p.Valid() {
		return skip(fmt.Errorf("%w: manifest lists %s", period.ErrUnresolvable, p))
	}
	if !known {
		inferred, err := period.FromFilename(filepath.Base(entry.Path))
		if err == nil {
			p, known = inferred, true
		}
	}

	_, err = workbook.Sniff(entry.Path)
	if err != nil {
		return skip(err)
	}

	if !known {
		table, err := workbook.Open(ctx, entry.Path)
		if err != nil {
			return skip(err)
		}
		p, err = period.FromTable(table, r.previewRows)
		if err != nil {
			return skip(err)
		}
	}

	_, err = r.emitter.EmitMonth(ctx, entry.Path, p.Year, p.Month)
	if err != nil {
		return skip(err)
	}
	return Outcome{Entry: entry, Period: p}
}

// entryPeriod returns the period listed in the manifest, if any. A listed
// period is not validated here.
func entryPeriod(entry manifest.Entry) (period.Period, bool) {
	year, month, ok := entry.Period()
	if !ok {
		return period.Period{}, false
	}
	return period.Period{Year: year, Month: month}, true
}
