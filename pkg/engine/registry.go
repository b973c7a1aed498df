package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"prism/pkg/dataset"
)

// Registry is a name-keyed (case-insensitive) algorithm lookup service.
// Registration is idempotent by name: re-registering overwrites. Mutations
// are serialized by a single mutex.
type Registry struct {
	mu         sync.Mutex
	algorithms map[string]Algorithm
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{algorithms: make(map[string]Algorithm)}
}

// Register stores the algorithm under its lower-cased name, replacing any
// previous registration with the same name.
func (r *Registry) Register(alg Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms[strings.ToLower(alg.Name())] = alg
}

// Unregister removes the named algorithm, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(name)
	_, ok := r.algorithms[key]
	delete(r.algorithms, key)
	return ok
}

// Get returns the named algorithm or an error wrapping ErrNotRegistered.
func (r *Registry) Get(name string) (Algorithm, error) {
	alg, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return alg, nil
}

// Lookup returns the named algorithm and whether it is registered.
func (r *Registry) Lookup(name string) (Algorithm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alg, ok := r.algorithms[strings.ToLower(name)]
	return alg, ok
}

// Contains reports whether the named algorithm is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// List returns every registered algorithm, sorted by name.
func (r *Registry) List() []Algorithm {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Algorithm, 0, len(r.algorithms))
	for _, alg := range r.algorithms {
		out = append(out, alg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ListByKind returns the registered algorithms targeting the given dataset
// kind (KindAny algorithms match every kind), sorted by name.
func (r *Registry) ListByKind(kind dataset.Kind) []Algorithm {
	var out []Algorithm
	for _, alg := range r.List() {
		if alg.Kind() == kind || alg.Kind() == dataset.KindAny {
			out = append(out, alg)
		}
	}
	return out
}

// Len returns the number of registered algorithms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.algorithms)
}

// Clear removes every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms = make(map[string]Algorithm)
}
