package telemetry

import (
	"context"
	"log/slog"
	"sync"
)

type Report struct {
	Kind  string
	ID    string
	Args  []slog.Attr
	Attrs []slog.Attr
	Count int64
	Unit  string
}

// Arg returns the value of the report argument named `key`.
func (r Report) Arg(key string) any {
	return find(r.Args, key)
}

// Attr returns the value of the context attribute named `key`.
func (r Report) Attr(key string) any {
	return find(r.Attrs, key)
}

func find(attrs []slog.Attr, key string) any {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.Any()
		}
	}
	return nil
}

// Recorder is an API that keeps every report in memory, tests use it to
// assert that a component reported (or did not report) something.
type Recorder struct {
	mu      sync.Mutex
	Reports []Report
}

func (r *Recorder) add(ctx context.Context, report Report) {
	report.Attrs = ContextAttrs(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, report)
}

func (r *Recorder) ReportBroken(ctx context.Context, id string, args ...any) {
	r.add(ctx, Report{Kind: "broken", ID: id, Args: toAttrs(args)})
}

func (r *Recorder) ReportWarning(ctx context.Context, id string, args ...any) {
	r.add(ctx, Report{Kind: "warning", ID: id, Args: toAttrs(args)})
}

func (r *Recorder) ReportCount(ctx context.Context, id string, count int64, unit string) {
	r.add(ctx, Report{Kind: "count", ID: id, Count: count, Unit: unit})
}

// Find returns all the reports with the given id.
func (r *Recorder) Find(id string) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Report
	for _, report := range r.Reports {
		if report.ID == id {
			out = append(out, report)
		}
	}
	return out
}
