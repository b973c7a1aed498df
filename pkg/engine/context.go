package engine

import (
	"context"
	"fmt"
	"math"

	"prism/pkg/dataset"
)

// ProgressFunc receives execution progress in [0, 1]. It is invoked
// synchronously on the executing goroutine; long-running callbacks delay the
// algorithm.
type ProgressFunc func(fraction float64)

// Store is the dataset lookup an execution context may carry for algorithms
// needing secondary datasets. Implementations live outside the engine.
type Store interface {
	Dataset(name string) (dataset.Dataset, error)
}

// Context carries everything one algorithm invocation needs: a read-only
// parameter bag, a cooperative cancellation signal, an optional progress
// sink, an optional dataset store, an optional output-name override, and an
// optional observer for lifecycle events. Build one with NewContext; it is
// immutable afterward.
type Context struct {
	params     map[string]any
	ctx        context.Context
	progress   ProgressFunc
	store      Store
	outputName string
	observer   Observer
}

// Has reports whether a parameter is present.
func (c *Context) Has(name string) bool {
	_, ok := c.params[name]
	return ok
}

// Value returns the raw parameter value.
func (c *Context) Value(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Err returns the cancellation signal's error, or nil when execution may
// continue. Algorithms check it at their suspension points.
func (c *Context) Err() error {
	if c.ctx == nil {
		return nil
	}
	return c.ctx.Err()
}

// ReportProgress forwards a progress fraction to the sink, clamped to
// [0, 1]. Nil sinks and NaN fractions are ignored.
func (c *Context) ReportProgress(fraction float64) {
	if c.progress == nil || math.IsNaN(fraction) {
		return
	}
	c.progress(math.Min(1, math.Max(0, fraction)))
}

// Store returns the dataset store reference, or nil.
func (c *Context) Store() Store { return c.store }

// OutputName returns the output-name override, or fallback when none is set.
func (c *Context) OutputName(fallback string) string {
	if c.outputName != "" {
		return c.outputName
	}
	return fallback
}

// Param returns the named parameter converted to T, or fallback when the
// parameter is absent or not convertible. It never fails.
func Param[T any](c *Context, name string, fallback T) T {
	v, ok := c.params[name]
	if !ok {
		return fallback
	}
	out, ok := convert[T](v)
	if !ok {
		return fallback
	}
	return out
}

// RequiredParam returns the named parameter converted to T, or an error
// wrapping ErrMissingParameter when absent, or a conversion error when the
// value has an incompatible type.
func RequiredParam[T any](c *Context, name string) (T, error) {
	var zero T
	v, ok := c.params[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrMissingParameter, name)
	}
	out, ok := convert[T](v)
	if !ok {
		return zero, fmt.Errorf("parameter %q: cannot convert %T to %T", name, v, zero)
	}
	return out, nil
}

// convert performs the tolerant conversions a parameter bag needs: exact
// type matches, widening between numeric kinds, and []any to []string.
func convert[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	switch any(zero).(type) {
	case float64:
		if f, ok := toFloat(v); ok {
			return any(f).(T), true
		}
	case int:
		switch n := v.(type) {
		case int64:
			return any(int(n)).(T), true
		case float64:
			if n == math.Trunc(n) {
				return any(int(n)).(T), true
			}
		case float32:
			f := float64(n)
			if f == math.Trunc(f) {
				return any(int(f)).(T), true
			}
		}
	case []string:
		switch items := v.(type) {
		case []any:
			out := make([]string, 0, len(items))
			for _, item := range items {
				s, ok := item.(string)
				if !ok {
					return zero, false
				}
				out = append(out, s)
			}
			return any(out).(T), true
		case string:
			// A bare scalar is a one-element list: CLI flags and YAML
			// scalars both produce plain strings for single-item subsets.
			return any([]string{items}).(T), true
		}
	}
	return zero, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Builder assembles a Context fluently. Every With* method returns the
// builder for chaining; Build yields an immutable Context and the builder
// may keep being used afterward without affecting built contexts.
type Builder struct {
	params     map[string]any
	ctx        context.Context
	progress   ProgressFunc
	store      Store
	outputName string
	observer   Observer
}

// NewContext starts a context builder.
func NewContext() *Builder {
	return &Builder{params: make(map[string]any)}
}

// WithParameter sets one parameter.
func (b *Builder) WithParameter(name string, value any) *Builder {
	b.params[name] = value
	return b
}

// WithParameters sets every parameter from the map.
func (b *Builder) WithParameters(params map[string]any) *Builder {
	for k, v := range params {
		b.params[k] = v
	}
	return b
}

// WithCancellation attaches the cooperative cancellation signal.
func (b *Builder) WithCancellation(ctx context.Context) *Builder {
	b.ctx = ctx
	return b
}

// WithProgress attaches a progress sink.
func (b *Builder) WithProgress(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// WithStore attaches a dataset store reference.
func (b *Builder) WithStore(s Store) *Builder {
	b.store = s
	return b
}

// WithOutputName overrides the output dataset's name.
func (b *Builder) WithOutputName(name string) *Builder {
	b.outputName = name
	return b
}

// WithObserver attaches a lifecycle-event observer.
func (b *Builder) WithObserver(obs Observer) *Builder {
	b.observer = obs
	return b
}

// Build returns the immutable context. Parameters are copied, so later
// builder mutations do not leak into built contexts.
func (b *Builder) Build() *Context {
	params := make(map[string]any, len(b.params))
	for k, v := range b.params {
		params[k] = v
	}
	return &Context{
		params:     params,
		ctx:        b.ctx,
		progress:   b.progress,
		store:      b.store,
		outputName: b.outputName,
		observer:   b.observer,
	}
}
