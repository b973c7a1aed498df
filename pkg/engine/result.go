package engine

import (
	"time"

	"prism/pkg/dataset"
)

// Result is the immutable outcome of one algorithm invocation.
//
// Invariants: a failed result has no output dataset and a non-empty Error;
// a succeeded result has an empty Error. Metrics and Metadata are snapshots
// taken at construction and never mutated afterward. Output, when present,
// is a new dataset — the input is never mutated by an algorithm.
type Result struct {
	Success  bool
	Output   dataset.Dataset
	Metrics  map[string]any
	Metadata map[string]string
	Duration time.Duration
	Error    string
}

// Metric returns one metric value by name.
func (r Result) Metric(name string) (any, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// FloatMetric returns one metric as a float64, converting integer metrics.
func (r Result) FloatMetric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// succeeded builds a success result with snapshotted metrics.
func succeeded(output dataset.Dataset, metrics map[string]any, duration time.Duration) Result {
	snapshot := make(map[string]any, len(metrics))
	for k, v := range metrics {
		snapshot[k] = v
	}
	return Result{
		Success:  true,
		Output:   output,
		Metrics:  snapshot,
		Metadata: make(map[string]string),
		Duration: duration,
	}
}

// failed builds a failure result carrying only the message and duration.
func failed(message string, duration time.Duration) Result {
	return Result{
		Success:  false,
		Metrics:  map[string]any{},
		Metadata: map[string]string{},
		Duration: duration,
		Error:    message,
	}
}
