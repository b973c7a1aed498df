package algorithms

import (
	"fmt"
	"math"
	"sort"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// PageRank defaults.
const (
	DefaultDamping    = 0.85
	DefaultIterations = 100
	DefaultTolerance  = 1e-6
)

// PageRankProperty is the node property holding the final score on the
// output graph.
const PageRankProperty = "pagerank"

// NodeScore pairs a node id with its rank, used for the top-nodes metric.
type NodeScore struct {
	ID    string
	Score float64
}

// PageRank computes power-iteration centrality over a directed graph. The
// total rank mass of dangling nodes (out-degree zero) is redistributed
// uniformly across all nodes each iteration, keeping the scores a proper
// probability distribution.
type PageRank struct {
	engine.Info
}

// NewPageRank constructs the algorithm with its declared parameters.
func NewPageRank() *PageRank {
	return &PageRank{Info: engine.NewInfo(
		"pagerank",
		"Power-iteration centrality; annotates each node with its rank",
		dataset.KindGraph,
		engine.ParamSpec{Name: "dampingFactor", Description: "probability of following an edge", Type: engine.TypeFloat, Default: DefaultDamping},
		engine.ParamSpec{Name: "maxIterations", Description: "iteration cap", Type: engine.TypeInt, Default: DefaultIterations},
		engine.ParamSpec{Name: "tolerance", Description: "convergence threshold on max score delta", Type: engine.TypeFloat, Default: DefaultTolerance},
	)}
}

// RunGraph executes the power iteration. An empty graph short-circuits to a
// metrics-only result with no output dataset.
func (p *PageRank) RunGraph(g dataset.Graph, c *engine.Context) (dataset.Dataset, map[string]any, error) {
	damping := engine.Param(c, "dampingFactor", DefaultDamping)
	maxIterations := engine.Param(c, "maxIterations", DefaultIterations)
	tolerance := engine.Param(c, "tolerance", DefaultTolerance)

	ids := g.NodeIDs()
	n := len(ids)
	if n == 0 {
		return nil, map[string]any{
			"iterations": 0,
			"converged":  true,
			"maxDelta":   0.0,
			"nodeCount":  0,
		}, nil
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// Out-adjacency first; neighbors outside the index (dangling references)
	// are ignored. The in-adjacency is its inversion, so each iteration sums
	// score[j]/outDegree[j] over in-neighbors instead of scanning all nodes.
	out := make([][]int, n)
	outDegree := make([]int, n)
	for i, id := range ids {
		for _, nb := range g.OutNeighbors(id) {
			if j, ok := index[nb]; ok {
				out[i] = append(out[i], j)
			}
		}
		outDegree[i] = len(out[i])
	}
	in := make([][]int, n)
	for i, targets := range out {
		for _, j := range targets {
			in[j] = append(in[j], i)
		}
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}

	iterations := 0
	converged := false
	maxDelta := 0.0

	for iterations < maxIterations {
		if err := c.Err(); err != nil {
			return nil, nil, fmt.Errorf("iteration %d: %w", iterations, err)
		}

		danglingSum := 0.0
		for i := range scores {
			if outDegree[i] == 0 {
				danglingSum += scores[i]
			}
		}
		base := (1 - damping + damping*danglingSum) / float64(n)

		maxDelta = 0
		for i := range next {
			sum := 0.0
			for _, j := range in[i] {
				sum += scores[j] / float64(outDegree[j])
			}
			next[i] = base + damping*sum
			if delta := math.Abs(next[i] - scores[i]); delta > maxDelta {
				maxDelta = delta
			}
		}
		scores, next = next, scores
		iterations++
		c.ReportProgress(float64(iterations) / float64(maxIterations))

		if maxDelta < tolerance {
			converged = true
			break
		}
	}

	output, err := dataset.CopyGraph(g, c.OutputName(g.Name()+"-pagerank"))
	if err != nil {
		return nil, nil, err
	}
	for i, id := range ids {
		if err := output.SetNodeProperty(id, PageRankProperty, scores[i]); err != nil {
			return nil, nil, err
		}
	}

	metrics := map[string]any{
		"iterations": iterations,
		"converged":  converged,
		"maxDelta":   maxDelta,
		"nodeCount":  n,
		"topNodes":   topNodes(ids, scores, 10),
	}
	return output, metrics, nil
}

// topNodes returns the k highest-scoring nodes, score descending, ties by
// id ascending.
func topNodes(ids []string, scores []float64, k int) []NodeScore {
	ranked := make([]NodeScore, len(ids))
	for i, id := range ids {
		ranked[i] = NodeScore{ID: id, Score: scores[i]}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
