package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"prism/pkg/dataset"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(newDoubler())
	r.Register(newCounter())

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	// Lookups are case-insensitive.
	if _, ok := r.Lookup("DOUBLER"); !ok {
		t.Error("Lookup(DOUBLER) should hit")
	}
	if !r.Contains("Counter") {
		t.Error("Contains(Counter) should hit")
	}

	alg, err := r.Get("doubler")
	if err != nil || alg.Name() != "doubler" {
		t.Errorf("Get(doubler) = %v, %v", alg, err)
	}

	_, err = r.Get("nope")
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Get(nope) err = %v, want ErrNotRegistered", err)
	}
}

func TestRegistry_OverwriteByName(t *testing.T) {
	r := NewRegistry()
	first := newDoubler()
	second := newDoubler()
	r.Register(first)
	r.Register(second)

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after overwrite", r.Len())
	}
	got, _ := r.Get("doubler")
	if got != Algorithm(second) {
		t.Error("Get should return the second registered instance")
	}
}

func TestRegistry_UnregisterAndClear(t *testing.T) {
	r := NewRegistry()
	r.Register(newDoubler())

	if !r.Unregister("Doubler") {
		t.Error("Unregister should report removal")
	}
	if r.Unregister("doubler") {
		t.Error("second Unregister should report absence")
	}

	r.Register(newDoubler())
	r.Register(newCounter())
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", r.Len())
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	r.Register(newDoubler())
	r.Register(newCounter())

	var names []string
	for _, alg := range r.List() {
		names = append(names, alg.Name())
	}
	if diff := cmp.Diff([]string{"counter", "doubler"}, names); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}

	graphs := r.ListByKind(dataset.KindGraph)
	if len(graphs) != 1 || graphs[0].Name() != "counter" {
		t.Errorf("ListByKind(graph) = %v, want [counter]", graphs)
	}
	if got := r.ListByKind(dataset.KindTabular); len(got) != 1 || got[0].Name() != "doubler" {
		t.Errorf("ListByKind(tabular) = %v, want [doubler]", got)
	}
}
