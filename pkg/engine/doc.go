// Package engine is the algorithm-execution core: the execution context and
// its builder, the immutable execution result, the algorithm contract with
// its base execution template, the observer notification sink, the
// name-keyed registry, and the sequential pipeline.
//
// Execution is synchronous and single-threaded. Cancellation is cooperative
// (a context.Context checked at well-defined points), progress callbacks run
// on the calling goroutine, and every failure mode — incompatible dataset
// kind, parameter validation, cancellation, execution error — surfaces as a
// failed Result, never as a panic to the caller of Execute.
package engine
