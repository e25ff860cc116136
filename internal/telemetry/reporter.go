// Package telemetry reports notable application events to an operator channel.
package telemetry

import (
	"context"
	"log/slog"
	"sort"
)

// Reporter receives operational events such as server errors and failed plan generations.
// Implementations must not block the caller for long.
type Reporter interface {
	Report(ctx context.Context, event string, fields map[string]any)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Report(context.Context, string, map[string]any) {}

// SlogReporter writes events to a structured logger at warn level.
type SlogReporter struct {
	logger *slog.Logger
}

func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) Report(ctx context.Context, event string, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	attrs = append(attrs, slog.String("event", event))
	for _, k := range sortedFieldKeys(fields) {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "telemetry.report", attrs...)
}

// MultiReporter fans an event out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, event string, fields map[string]any) {
	for _, r := range m {
		r.Report(ctx, event, fields)
	}
}

func sortedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
