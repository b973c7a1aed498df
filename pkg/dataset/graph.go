package dataset

import (
	"errors"
	"fmt"
	"sort"

	dgraph "github.com/dominikbraun/graph"
)

// PropertyGraph is the reference Graph implementation. Structure (vertices,
// edges, duplicate detection, adjacency derivation) is delegated to a
// directed dominikbraun/graph; property maps and deterministic enumeration
// order live on top. Adjacency indexes are built lazily on first lookup and
// cached until the next mutation, so lookups are O(1) amortized.
type PropertyGraph struct {
	name      string
	backing   dgraph.Graph[string, string]
	order     []string
	props     map[string]map[string]any
	edgeOrder []edgeKey
	edgeProps map[edgeKey]map[string]any

	outCache map[string][]string
	inCache  map[string][]string
	dirty    bool
}

type edgeKey struct{ from, to string }

// NewGraph creates an empty named directed property graph.
func NewGraph(name string) *PropertyGraph {
	return &PropertyGraph{
		name:      name,
		backing:   dgraph.New(dgraph.StringHash, dgraph.Directed()),
		props:     make(map[string]map[string]any),
		edgeProps: make(map[edgeKey]map[string]any),
		dirty:     true,
	}
}

func (g *PropertyGraph) Name() string { return g.name }
func (g *PropertyGraph) Kind() Kind   { return KindGraph }

// NodeCount returns the number of nodes.
func (g *PropertyGraph) NodeCount() int { return len(g.order) }

// NodeIDs returns node ids in insertion order.
func (g *PropertyGraph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *PropertyGraph) HasNode(id string) bool {
	_, ok := g.props[id]
	return ok
}

// NodeProperties returns a copy of the node's property map, or nil when the
// node does not exist.
func (g *PropertyGraph) NodeProperties(id string) map[string]any {
	props, ok := g.props[id]
	if !ok {
		return nil
	}
	if props == nil {
		return map[string]any{}
	}
	return cloneProps(props)
}

// AddNode adds a node with an optional property map. The map is copied.
func (g *PropertyGraph) AddNode(id string, props map[string]any) error {
	if err := g.backing.AddVertex(id); err != nil {
		if errors.Is(err, dgraph.ErrVertexAlreadyExists) {
			return fmt.Errorf("%w: %q in graph %q", ErrDuplicateNode, id, g.name)
		}
		return fmt.Errorf("add node %q: %w", id, err)
	}
	stored := cloneProps(props)
	if stored == nil {
		stored = map[string]any{}
	}
	g.props[id] = stored
	g.order = append(g.order, id)
	g.dirty = true
	return nil
}

// AddEdge adds a directed edge between two existing nodes. The property map
// is copied.
func (g *PropertyGraph) AddEdge(from, to string, props map[string]any) error {
	if err := g.backing.AddEdge(from, to); err != nil {
		switch {
		case errors.Is(err, dgraph.ErrVertexNotFound):
			return fmt.Errorf("%w: edge %q -> %q in graph %q", ErrNodeNotFound, from, to, g.name)
		case errors.Is(err, dgraph.ErrEdgeAlreadyExists):
			return fmt.Errorf("%w: %q -> %q in graph %q", ErrDuplicateEdge, from, to, g.name)
		default:
			return fmt.Errorf("add edge %q -> %q: %w", from, to, err)
		}
	}
	key := edgeKey{from, to}
	g.edgeOrder = append(g.edgeOrder, key)
	g.edgeProps[key] = cloneProps(props)
	g.dirty = true
	return nil
}

// SetNodeProperty sets one property on an existing node. Used by algorithms
// to annotate their freshly built output graphs.
func (g *PropertyGraph) SetNodeProperty(id, key string, value any) error {
	props, ok := g.props[id]
	if !ok {
		return fmt.Errorf("%w: %q in graph %q", ErrNodeNotFound, id, g.name)
	}
	props[key] = value
	return nil
}

// OutNeighbors returns the targets of the node's outgoing edges, sorted.
func (g *PropertyGraph) OutNeighbors(id string) []string {
	g.ensureAdjacency()
	return copyStrings(g.outCache[id])
}

// InNeighbors returns the sources of the node's incoming edges, sorted.
func (g *PropertyGraph) InNeighbors(id string) []string {
	g.ensureAdjacency()
	return copyStrings(g.inCache[id])
}

// Neighbors returns the union of out- and in-neighbors, sorted, without
// duplicates.
func (g *PropertyGraph) Neighbors(id string) []string {
	g.ensureAdjacency()
	out := g.outCache[id]
	in := g.inCache[id]
	seen := make(map[string]struct{}, len(out)+len(in))
	union := make([]string, 0, len(out)+len(in))
	for _, lists := range [2][]string{out, in} {
		for _, nb := range lists {
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			union = append(union, nb)
		}
	}
	sort.Strings(union)
	return union
}

// Edges returns every edge in insertion order with copied property maps.
func (g *PropertyGraph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, Edge{
			From:       key.from,
			To:         key.to,
			Properties: cloneProps(g.edgeProps[key]),
		})
	}
	return out
}

// ensureAdjacency rebuilds the cached adjacency indexes from the backing
// graph after a mutation. The in-memory backing cannot fail, so derivation
// errors reduce to empty indexes.
func (g *PropertyGraph) ensureAdjacency() {
	if !g.dirty && g.outCache != nil {
		return
	}
	g.outCache = make(map[string][]string, len(g.order))
	g.inCache = make(map[string][]string, len(g.order))
	adj, err := g.backing.AdjacencyMap()
	if err == nil {
		for from, targets := range adj {
			nbs := make([]string, 0, len(targets))
			for to := range targets {
				nbs = append(nbs, to)
			}
			sort.Strings(nbs)
			g.outCache[from] = nbs
		}
	}
	pred, err := g.backing.PredecessorMap()
	if err == nil {
		for to, sources := range pred {
			nbs := make([]string, 0, len(sources))
			for from := range sources {
				nbs = append(nbs, from)
			}
			sort.Strings(nbs)
			g.inCache[to] = nbs
		}
	}
	g.dirty = false
}

// CopyGraph builds a new PropertyGraph with every node, edge, and property
// of src, under a new name. Algorithms use it to derive annotated outputs
// without touching their input.
func CopyGraph(src Graph, name string) (*PropertyGraph, error) {
	out := NewGraph(name)
	for _, id := range src.NodeIDs() {
		if err := out.AddNode(id, src.NodeProperties(id)); err != nil {
			return nil, fmt.Errorf("copy graph %q: %w", src.Name(), err)
		}
	}
	for _, e := range src.Edges() {
		if err := out.AddEdge(e.From, e.To, e.Properties); err != nil {
			return nil, fmt.Errorf("copy graph %q: %w", src.Name(), err)
		}
	}
	return out, nil
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
