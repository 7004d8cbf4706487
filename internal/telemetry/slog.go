package telemetry

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAPI writes reports to Logger, or to the default logger when it is nil.
// The scope and event of an id become separate attributes and the report
// arguments are grouped under `report`.
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) log(ctx context.Context, level slog.Level, msg, id string, attrs ...slog.Attr) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]slog.Attr, 0, len(attrs)+4)
	scope, event, found := strings.Cut(id, ":")
	if found {
		out = append(out, slog.String("scope", scope), slog.String("event", event))
	} else {
		out = append(out, slog.String("event", id))
	}
	out = append(out, ContextAttrs(ctx)...)
	out = append(out, attrs...)
	logger.LogAttrs(ctx, level, msg, out...)
}

func (s SlogAPI) ReportBroken(ctx context.Context, id string, args ...any) {
	s.log(ctx, slog.LevelError, "component broken", id, slog.Group("report", args...))
}

func (s SlogAPI) ReportWarning(ctx context.Context, id string, args ...any) {
	s.log(ctx, slog.LevelWarn, "component warning", id, slog.Group("report", args...))
}

func (s SlogAPI) ReportCount(ctx context.Context, id string, count int64, unit string) {
	s.log(ctx, slog.LevelDebug, "component count", id, slog.Int64("count", count), slog.String("unit", unit))
}
