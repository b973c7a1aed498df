package algorithms

import (
	"fmt"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// ComponentProperty is the node property holding the component id on the
// output graph.
const ComponentProperty = "componentId"

// ConnectedComponents decomposes a graph into weakly connected components
// (edge direction ignored, breadth-first) or strongly connected components
// (Tarjan's algorithm on an explicit heap-allocated stack; input graphs
// may be large enough that native recursion would overflow).
type ConnectedComponents struct {
	engine.Info
}

// NewConnectedComponents constructs the algorithm with its declared
// parameters.
func NewConnectedComponents() *ConnectedComponents {
	return &ConnectedComponents{Info: engine.NewInfo(
		"connectedcomponents",
		"Weak or strong component decomposition; annotates each node with its component id",
		dataset.KindGraph,
		engine.ParamSpec{Name: "directed", Description: "true for strongly connected components", Type: engine.TypeBool, Default: false},
	)}
}

// RunGraph assigns a component id to every node. An empty graph
// short-circuits to a metrics-only result with no output dataset.
func (a *ConnectedComponents) RunGraph(g dataset.Graph, c *engine.Context) (dataset.Dataset, map[string]any, error) {
	directed := engine.Param(c, "directed", false)

	ids := g.NodeIDs()
	n := len(ids)
	if n == 0 {
		return nil, map[string]any{
			"componentCount":       0,
			"largestComponentSize": 0,
			"componentSizes":       map[int]int{},
			"nodeCount":            0,
			"directed":             directed,
		}, nil
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	var components []int
	var err error
	if directed {
		components, err = strongComponents(g, ids, index, c)
	} else {
		components, err = weakComponents(g, ids, index, c)
	}
	if err != nil {
		return nil, nil, err
	}

	output, err := dataset.CopyGraph(g, c.OutputName(g.Name()+"-components"))
	if err != nil {
		return nil, nil, err
	}
	for i, id := range ids {
		if err := output.SetNodeProperty(id, ComponentProperty, components[i]); err != nil {
			return nil, nil, err
		}
	}

	sizes := map[int]int{}
	largest := 0
	for _, comp := range components {
		sizes[comp]++
		if sizes[comp] > largest {
			largest = sizes[comp]
		}
	}

	metrics := map[string]any{
		"componentCount":       len(sizes),
		"largestComponentSize": largest,
		"componentSizes":       sizes,
		"nodeCount":            n,
		"directed":             directed,
	}
	return output, metrics, nil
}

// weakComponents labels components by breadth-first expansion over the
// union of out- and in-neighbors. Cancellation is checked and progress
// reported once per root scanned.
func weakComponents(g dataset.Graph, ids []string, index map[string]int, c *engine.Context) ([]int, error) {
	n := len(ids)
	components := make([]int, n)
	for i := range components {
		components[i] = -1
	}

	nextComponent := 0
	for root := 0; root < n; root++ {
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("component search at node %q: %w", ids[root], err)
		}
		if components[root] != -1 {
			c.ReportProgress(float64(root+1) / float64(n))
			continue
		}

		components[root] = nextComponent
		queue := []int{root}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, nb := range g.Neighbors(ids[v]) {
				w, ok := index[nb]
				if !ok || components[w] != -1 {
					continue
				}
				components[w] = nextComponent
				queue = append(queue, w)
			}
		}
		nextComponent++
		c.ReportProgress(float64(root+1) / float64(n))
	}
	return components, nil
}

// sccFrame is one explicit DFS frame: a node and a cursor into its
// out-neighbor list.
type sccFrame struct {
	node   int
	cursor int
}

// strongComponents labels strongly connected components with an iterative
// Tarjan's algorithm. The DFS runs on an explicit growable frame stack
// rather than the call stack, so component depth is bounded by heap, not by
// native recursion limits. Assignments are identical to recursive Tarjan's.
func strongComponents(g dataset.Graph, ids []string, index map[string]int, c *engine.Context) ([]int, error) {
	n := len(ids)
	const unvisited = -1

	out := make([][]int, n)
	for i, id := range ids {
		for _, nb := range g.OutNeighbors(id) {
			if j, ok := index[nb]; ok {
				out[i] = append(out[i], j)
			}
		}
	}

	discovery := make([]int, n)
	lowLink := make([]int, n)
	onStack := make([]bool, n)
	components := make([]int, n)
	for i := range discovery {
		discovery[i] = unvisited
		components[i] = -1
	}

	var stack []int
	var frames []sccFrame
	clock := 0
	nextComponent := 0

	for root := 0; root < n; root++ {
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("component search at node %q: %w", ids[root], err)
		}
		if discovery[root] != unvisited {
			c.ReportProgress(float64(root+1) / float64(n))
			continue
		}

		discovery[root] = clock
		lowLink[root] = clock
		clock++
		stack = append(stack, root)
		onStack[root] = true
		frames = append(frames[:0], sccFrame{node: root})

		for len(frames) > 0 {
			f := &frames[len(frames)-1]

			if f.cursor < len(out[f.node]) {
				w := out[f.node][f.cursor]
				f.cursor++
				if discovery[w] == unvisited {
					discovery[w] = clock
					lowLink[w] = clock
					clock++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, sccFrame{node: w})
				} else if onStack[w] && discovery[w] < lowLink[f.node] {
					lowLink[f.node] = discovery[w]
				}
				continue
			}

			// Neighbor iterator exhausted: pop the frame, propagate lowLink
			// to the parent, and close a component when this node is its
			// root (lowLink == discovery).
			v := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if lowLink[v] < lowLink[parent.node] {
					lowLink[parent.node] = lowLink[v]
				}
			}
			if lowLink[v] == discovery[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					components[w] = nextComponent
					if w == v {
						break
					}
				}
				nextComponent++
			}
		}
		c.ReportProgress(float64(root+1) / float64(n))
	}
	return components, nil
}
