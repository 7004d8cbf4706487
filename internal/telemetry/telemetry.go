// Package telemetry is the reporting surface components use for diagnostics
// that an operator may need to act on. Tests swap the slog backed
// implementation for a Recorder and assert on what was reported.
package telemetry

import (
	"context"
	"log/slog"
	"slices"
)

// API receives component reports. `id` is `<scope>:<event>` once it went
// through Scoped, ex. `catalog:possible-alias`. `args` are slog style
// key-value pairs (or slog.Attr values) describing the event.
type API interface {
	// ReportBroken reports a failure that should be addressed by someone.
	ReportBroken(ctx context.Context, id string, args ...any)
	// ReportWarning reports something that did not fail the operation but may
	// need a look, ex. a new bank name that is close to an existing one.
	ReportWarning(ctx context.Context, id string, args ...any)
	// ReportCount reports how many `unit`s an operation handled, units follow
	// the UCUM annotation style used by otel, ex. `{record}`.
	ReportCount(ctx context.Context, id string, count int64, unit string)
}

type scoped struct {
	scope string
	inner API
}

// Scoped prefixes every id reported through the returned API with `scope`.
func Scoped(scope string, inner API) API {
	return scoped{scope: scope, inner: inner}
}

func (s scoped) id(event string) string {
	return s.scope + ":" + event
}

func (s scoped) ReportBroken(ctx context.Context, id string, args ...any) {
	s.inner.ReportBroken(ctx, s.id(id), args...)
}

func (s scoped) ReportWarning(ctx context.Context, id string, args ...any) {
	s.inner.ReportWarning(ctx, s.id(id), args...)
}

func (s scoped) ReportCount(ctx context.Context, id string, count int64, unit string) {
	s.inner.ReportCount(ctx, s.id(id), count, unit)
}

type attrsKey struct{}

// WithAttrs returns a context whose reports also carry the given key-value
// pairs, the batch runner uses it to tag everything with its run id.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	attrs := append(slices.Clip(ContextAttrs(ctx)), toAttrs(args)...)
	return context.WithValue(ctx, attrsKey{}, attrs)
}

// ContextAttrs returns the attributes attached with WithAttrs.
func ContextAttrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

func toAttrs(args []any) []slog.Attr {
	return slog.Group("", args...).Value.Group()
}
