package bench

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	BenchStatsName = "xtree/bench"
)

type benchStats struct {
	durations metric.Float64Histogram
	found     metric.Int64Counter
}

func (stats *benchStats) RecordWorkload(ctx context.Context, collection, workload string, elapsed time.Duration, found int) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("xtree.bench.collection", collection),
		attribute.String("xtree.bench.workload", workload),
	)
	stats.durations.Record(ctx, float64(elapsed.Microseconds())/1e3, metric.WithAttributeSet(as))
	stats.found.Add(ctx, int64(found), metric.WithAttributeSet(as))
}

func newBenchStats(mp metric.MeterProvider) *benchStats {
	meter := mp.Meter(BenchStatsName)
	return &benchStats{
		durations: lo.Must[metric.Float64Histogram](meter.Float64Histogram(
			"xtree.bench.workload.duration",
			metric.WithDescription("The duration of one workload against one collection. In milliseconds."),
			metric.WithUnit("ms"),
		)),
		found: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.bench.workload.found",
			metric.WithDescription("The number of successful finds of one workload."),
		)),
	}
}
