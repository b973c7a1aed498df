package engine

import (
	"fmt"
	"time"

	"prism/pkg/dataset"
)

// Step pairs an algorithm with an optional per-step context customizer. The
// customizer receives a builder pre-seeded with the base context's
// cancellation signal, store reference, observer, and partitioned progress
// sink, and typically adds parameters or an output-name override.
type Step struct {
	Algorithm Algorithm
	Configure func(*Builder)
}

// Pipeline chains algorithms so each step's output dataset feeds the next
// step's input. Steps run in declaration order; the first failure stops the
// pipeline.
type Pipeline struct {
	name  string
	steps []Step
}

// NewPipeline creates a named pipeline over the given steps.
func NewPipeline(name string, steps ...Step) *Pipeline {
	return &Pipeline{name: name, steps: steps}
}

// Add appends a step and returns the pipeline for chaining.
func (p *Pipeline) Add(step Step) *Pipeline {
	p.steps = append(p.steps, step)
	return p
}

func (p *Pipeline) Name() string { return p.name }

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int { return len(p.steps) }

// StepNames returns the algorithm name of each step in order.
func (p *Pipeline) StepNames() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Algorithm.Name()
	}
	return out
}

// PipelineResult aggregates, in execution order, every executed step's
// Result, the index of the first failed step (-1 when none), the final
// output dataset (the last dataset any step produced), and total wall-clock
// duration. Read-only after construction.
type PipelineResult struct {
	Success     bool
	StepResults []Result
	FailedStep  int
	Output      dataset.Dataset
	Duration    time.Duration
	Error       string
}

// FlatMetrics flattens every step's metrics into one map keyed
// "<stepIndex>.<algorithmName>.<metricKey>".
func (r PipelineResult) FlatMetrics() map[string]any {
	out := make(map[string]any)
	for i, step := range r.StepResults {
		name := step.Metadata["algorithm"]
		for key, value := range step.Metrics {
			out[fmt.Sprintf("%d.%s.%s", i, name, key)] = value
		}
	}
	return out
}

// Execute runs the steps in order against the input dataset. Each step's
// context inherits the base context's cancellation signal, store reference,
// and observer; a base progress sink is partitioned so step i of N reports
// into [i/N, (i+1)/N). A step that produces a dataset feeds it to the next
// step; a metrics-only step passes its own input onward unchanged. The
// first failed step stops the pipeline; its index and message are recorded
// alongside every step result gathered so far.
func (p *Pipeline) Execute(ds dataset.Dataset, base *Context) PipelineResult {
	start := time.Now()
	if base == nil {
		base = NewContext().Build()
	}

	n := len(p.steps)
	current := ds
	var final dataset.Dataset
	results := make([]Result, 0, n)

	for i, step := range p.steps {
		if err := base.Err(); err != nil {
			msg := fmt.Sprintf("%s before step %d (%v)", ErrCancelled, i, err)
			results = append(results, failed(msg, 0))
			return p.finish(base, results, i, final, start, msg)
		}

		b := NewContext().
			WithCancellation(base.ctx).
			WithStore(base.store).
			WithObserver(base.observer)
		if base.progress != nil {
			offset := float64(i) / float64(n)
			width := 1 / float64(n)
			outer := base.progress
			b.WithProgress(func(f float64) {
				outer(offset + clampFraction(f)*width)
			})
		}
		if step.Configure != nil {
			step.Configure(b)
		}

		res := Execute(step.Algorithm, current, b.Build())
		results = append(results, res)

		if !res.Success {
			return p.finish(base, results, i, final, start, res.Error)
		}
		if res.Output != nil {
			current = res.Output
			final = res.Output
		}
	}

	return p.finish(base, results, -1, final, start, "")
}

func (p *Pipeline) finish(base *Context, results []Result, failedStep int, final dataset.Dataset, start time.Time, errMsg string) PipelineResult {
	res := PipelineResult{
		Success:     failedStep < 0,
		StepResults: results,
		FailedStep:  failedStep,
		Output:      final,
		Duration:    time.Since(start),
		Error:       errMsg,
	}
	emitEvent(base.observer, Event{
		Type:       EventPipelineCompleted,
		Pipeline:   p.name,
		Success:    res.Success,
		Duration:   res.Duration,
		Error:      errMsg,
		StepCount:  len(p.steps),
		FailedStep: failedStep,
	})
	return res
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
