package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Pipeline metric attribute keys
var (
	AttrRequest  = attribute.Key("request")
	AttrCategory = attribute.Key("category")
	AttrOutcome  = attribute.Key("outcome")
)

// Pipeline outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// PipelineMetrics counts mediator requests and records their duration
type PipelineMetrics struct {
	requests *Counter
	duration *Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	requests, err := NewCounter(meter, "cqrs.requests", "Mediator requests by outcome", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "cqrs.request.duration", "Mediator request duration", "s", RequestDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &PipelineMetrics{requests: requests, duration: duration}, nil
}

// Record records one finished request. A nil receiver records nothing.
func (m *PipelineMetrics) Record(ctx context.Context, category, request, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrCategory.String(category),
		AttrRequest.String(request),
		AttrOutcome.String(outcome),
	}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}
