package engine

import "errors"

var (
	// ErrMissingParameter is returned when a required parameter is absent
	// from the execution context.
	ErrMissingParameter = errors.New("engine: missing required parameter")

	// ErrCancelled marks cooperative cancellation observed before or during
	// execution. It surfaces in a failed Result's error string, never as a
	// crash.
	ErrCancelled = errors.New("engine: execution cancelled")

	// ErrNotRegistered is returned when a registry lookup misses.
	ErrNotRegistered = errors.New("engine: algorithm not registered")

	// ErrNoRoutine is returned when an algorithm declares a kind but
	// implements no routine for it.
	ErrNoRoutine = errors.New("engine: algorithm has no kind-specific routine")
)
