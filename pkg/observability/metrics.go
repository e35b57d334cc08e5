package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricChecksTotal     = "unusedstyles.checks.total"
	metricCheckDuration   = "unusedstyles.check.duration.seconds"
	metricUnusedTotal     = "unusedstyles.unused.variables.total"
	metricInflightChecks  = "unusedstyles.inflight.checks"
	attrStatus            = "status"
	attrSource            = "source"
	durationUnitSeconds   = "s"
	checkCounterUnit      = "{check}"
	variableCounterUnit   = "{variable}"
	inflightCounterUnit   = "{check}"
	checkDurationDescribe = "Duration of a single style file check in seconds"
)

// durationBucketBoundaries covers 0.1ms to 5s; a check is two small file
// reads and a string scan.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// CheckMetrics holds the OTel instruments recorded per style file check.
type CheckMetrics struct {
	checksTotal    metric.Int64Counter
	checkDuration  metric.Float64Histogram
	unusedTotal    metric.Int64Counter
	inflightChecks metric.Int64UpDownCounter
}

// NewCheckMetrics creates the check instruments from the given meter.
func NewCheckMetrics(mt metric.Meter) (*CheckMetrics, error) {
	checksTotal, err := mt.Int64Counter(metricChecksTotal,
		metric.WithDescription("Total number of style file checks by outcome"),
		metric.WithUnit(checkCounterUnit),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricChecksTotal, err)
	}

	checkDuration, err := mt.Float64Histogram(metricCheckDuration,
		metric.WithDescription(checkDurationDescribe),
		metric.WithUnit(durationUnitSeconds),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCheckDuration, err)
	}

	unusedTotal, err := mt.Int64Counter(metricUnusedTotal,
		metric.WithDescription("Total number of unused style variables reported"),
		metric.WithUnit(variableCounterUnit),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricUnusedTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightChecks,
		metric.WithDescription("Number of checks in progress"),
		metric.WithUnit(inflightCounterUnit),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightChecks, err)
	}

	return &CheckMetrics{
		checksTotal:    checksTotal,
		checkDuration:  checkDuration,
		unusedTotal:    unusedTotal,
		inflightChecks: inflight,
	}, nil
}

// RecordCheck records one finished check. Source names the host that asked
// for it (cli, watch, mcp) and status its outcome.
func (cm *CheckMetrics) RecordCheck(ctx context.Context, source, status string, unused int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrSource, source),
		attribute.String(attrStatus, status),
	)

	cm.checksTotal.Add(ctx, 1, attrs)
	cm.checkDuration.Record(ctx, duration.Seconds(), attrs)

	if unused > 0 {
		cm.unusedTotal.Add(ctx, int64(unused), metric.WithAttributes(attribute.String(attrSource, source)))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (cm *CheckMetrics) TrackInflight(ctx context.Context, source string) func() {
	attrs := metric.WithAttributes(attribute.String(attrSource, source))
	cm.inflightChecks.Add(ctx, 1, attrs)

	return func() {
		cm.inflightChecks.Add(ctx, -1, attrs)
	}
}
