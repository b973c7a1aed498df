package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prism/pkg/dataset"
)

// Algorithm is the static half of the contract: identity, target dataset
// kind, parameter schema, and the pre-flight checks. The dynamic half is one
// of the kind-specific routine interfaces below; Execute dispatches over
// that closed union.
type Algorithm interface {
	Name() string
	Description() string
	Kind() dataset.Kind
	Parameters() []ParamSpec
	CanExecute(ds dataset.Dataset) bool
	ValidateParameters(c *Context) []string
}

// TabularAlgorithm narrows Algorithm with a routine over tabular datasets.
// The routine returns its output dataset (nil for metrics-only results),
// its metrics, and an error; it must not swallow errors it cannot recover
// from — Execute owns failure translation.
type TabularAlgorithm interface {
	Algorithm
	RunTabular(tab dataset.Tabular, c *Context) (dataset.Dataset, map[string]any, error)
}

// GraphAlgorithm narrows Algorithm with a routine over graph datasets.
type GraphAlgorithm interface {
	Algorithm
	RunGraph(g dataset.Graph, c *Context) (dataset.Dataset, map[string]any, error)
}

// Info supplies the static half of the Algorithm contract; concrete
// algorithms embed it and implement only their kind-specific routine.
type Info struct {
	name        string
	description string
	kind        dataset.Kind
	params      []ParamSpec
}

// NewInfo builds the static declaration for an algorithm.
func NewInfo(name, description string, kind dataset.Kind, params ...ParamSpec) Info {
	return Info{name: name, description: description, kind: kind, params: params}
}

func (i Info) Name() string        { return i.name }
func (i Info) Description() string { return i.description }
func (i Info) Kind() dataset.Kind  { return i.kind }

// Parameters returns the declared parameter schema.
func (i Info) Parameters() []ParamSpec {
	out := make([]ParamSpec, len(i.params))
	copy(out, i.params)
	return out
}

// CanExecute reports kind compatibility: the dataset's kind matches the
// declared kind, or the declared kind is KindAny.
func (i Info) CanExecute(ds dataset.Dataset) bool {
	return i.kind == dataset.KindAny || ds.Kind() == i.kind
}

// ValidateParameters applies the default policy: every required declared
// parameter must be present.
func (i Info) ValidateParameters(c *Context) []string {
	return ValidateRequired(i.params, c)
}

// Execute is the base execution template and the only entry point callers
// use. It enforces, in order: kind compatibility, parameter validation,
// the cancellation pre-check, lifecycle events around the kind-specific
// routine, cancellation and panic translation, and end-to-end duration
// (validation included). It always returns a Result; it never panics.
func Execute(alg Algorithm, ds dataset.Dataset, c *Context) Result {
	start := time.Now()
	if c == nil {
		c = NewContext().Build()
	}
	if ds == nil {
		return failed(fmt.Sprintf("%s: nil input dataset", alg.Name()), time.Since(start))
	}

	if !alg.CanExecute(ds) {
		msg := fmt.Sprintf("%s (kind=%s) is not compatible with %s (expects %s)",
			ds.Name(), ds.Kind(), alg.Name(), alg.Kind())
		return failed(msg, time.Since(start))
	}

	if violations := alg.ValidateParameters(c); len(violations) > 0 {
		return failed(strings.Join(violations, "; "), time.Since(start))
	}

	if err := c.Err(); err != nil {
		return failed(fmt.Sprintf("%s before execution (%v)", ErrCancelled, err), time.Since(start))
	}

	emitEvent(c.observer, Event{
		Type:      EventAlgorithmStarted,
		Algorithm: alg.Name(),
		Input:     ds,
	})

	output, metrics, err := runRoutine(alg, ds, c)
	duration := time.Since(start)

	if err != nil {
		msg := err.Error()
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("%s (%v)", ErrCancelled, err)
		}
		res := failed(msg, duration)
		emitEvent(c.observer, Event{
			Type:      EventAlgorithmCompleted,
			Algorithm: alg.Name(),
			Input:     ds,
			Success:   false,
			Duration:  duration,
			Error:     msg,
		})
		return res
	}

	res := succeeded(output, metrics, duration)
	res.Metadata["algorithm"] = alg.Name()
	res.Metadata["input"] = ds.Name()
	res.Metadata["duration"] = duration.String()
	emitEvent(c.observer, Event{
		Type:      EventAlgorithmCompleted,
		Algorithm: alg.Name(),
		Input:     ds,
		Output:    output,
		Success:   true,
		Duration:  duration,
	})
	return res
}

// runRoutine dispatches to the kind-specific routine, recovering panics
// into ordinary errors so a broken routine cannot crash the caller.
func runRoutine(alg Algorithm, ds dataset.Dataset, c *Context) (output dataset.Dataset, metrics map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			output, metrics = nil, nil
			err = fmt.Errorf("%s: panic: %v", alg.Name(), r)
		}
	}()

	switch a := alg.(type) {
	case TabularAlgorithm:
		tab, ok := ds.(dataset.Tabular)
		if !ok {
			return nil, nil, fmt.Errorf("%s: dataset %q does not implement the tabular contract", alg.Name(), ds.Name())
		}
		return a.RunTabular(tab, c)
	case GraphAlgorithm:
		g, ok := ds.(dataset.Graph)
		if !ok {
			return nil, nil, fmt.Errorf("%s: dataset %q does not implement the graph contract", alg.Name(), ds.Name())
		}
		return a.RunGraph(g, c)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrNoRoutine, alg.Name())
	}
}
