package algorithms

import (
	"testing"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// testGraph builds a directed graph from node ids and from->to edge pairs.
func testGraph(t *testing.T, name string, nodes []string, edges [][2]string) *dataset.PropertyGraph {
	t.Helper()
	g := dataset.NewGraph(name)
	for _, id := range nodes {
		if err := g.AddNode(id, nil); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1], nil); err != nil {
			t.Fatalf("AddEdge(%q, %q): %v", e[0], e[1], err)
		}
	}
	return g
}

// run executes an algorithm with a fresh default context.
func run(alg engine.Algorithm, ds dataset.Dataset, params map[string]any) engine.Result {
	c := engine.NewContext().WithParameters(params).Build()
	return engine.Execute(alg, ds, c)
}

// nodeFloat extracts a float64 node property from a graph result output.
func nodeFloat(t *testing.T, res engine.Result, id, key string) float64 {
	t.Helper()
	g, ok := res.Output.(dataset.Graph)
	if !ok {
		t.Fatalf("output is %T, want graph", res.Output)
	}
	v, ok := g.NodeProperties(id)[key]
	if !ok {
		t.Fatalf("node %q has no property %q", id, key)
	}
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("property %q on %q is %T, want float64", key, id, v)
	}
	return f
}

// nodeInt extracts an int node property from a graph result output.
func nodeInt(t *testing.T, res engine.Result, id, key string) int {
	t.Helper()
	g, ok := res.Output.(dataset.Graph)
	if !ok {
		t.Fatalf("output is %T, want graph", res.Output)
	}
	v, ok := g.NodeProperties(id)[key]
	if !ok {
		t.Fatalf("node %q has no property %q", id, key)
	}
	n, ok := v.(int)
	if !ok {
		t.Fatalf("property %q on %q is %T, want int", key, id, v)
	}
	return n
}
