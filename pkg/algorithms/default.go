package algorithms

import "prism/pkg/engine"

// NewRegistry returns a registry pre-populated with every built-in
// algorithm.
func NewRegistry() *engine.Registry {
	r := engine.NewRegistry()
	r.Register(NewPageRank())
	r.Register(NewConnectedComponents())
	r.Register(NewMinMaxNormalize())
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Callers that need isolation,
// tests mostly, should build their own with NewRegistry.
func Default() *engine.Registry {
	return defaultRegistry
}

// ResetDefault replaces the process-wide registry with a fresh pre-populated
// one and returns it.
func ResetDefault() *engine.Registry {
	defaultRegistry = NewRegistry()
	return defaultRegistry
}
