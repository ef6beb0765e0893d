// Package graph provides the undirected relation graphs the phrase
// generator walks, built once at startup from a symmetric predicate.
package graph

// Graph is an immutable node list plus adjacency-by-index. Adjacency is
// symmetric and loop-free; neighbor lists are sorted so construction is
// deterministic for a deterministic node order.
type Graph[N any] struct {
	Nodes []N
	Adj   [][]int
}

// Build tests every unordered pair once against the predicate. O(n^2) is
// acceptable: graphs are built once at startup and n stays in the low
// thousands.
// With pruneIsolated set, nodes that relate to nothing are dropped and the
// remaining indices compacted.
func Build[N any](nodes []N, related func(a, b N) bool, pruneIsolated bool) *Graph[N] {
	g := &Graph[N]{
		Nodes: nodes,
		Adj:   make([][]int, len(nodes)),
	}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if related(nodes[i], nodes[j]) {
				g.Adj[i] = append(g.Adj[i], j)
				g.Adj[j] = append(g.Adj[j], i)
			}
		}
	}
	if pruneIsolated {
		return g.pruned()
	}
	return g
}

func (g *Graph[N]) pruned() *Graph[N] {
	remap := make([]int, len(g.Nodes))
	kept := 0
	for i := range g.Nodes {
		if len(g.Adj[i]) > 0 {
			remap[i] = kept
			kept++
		} else {
			remap[i] = -1
		}
	}
	out := &Graph[N]{
		Nodes: make([]N, 0, kept),
		Adj:   make([][]int, 0, kept),
	}
	for i, node := range g.Nodes {
		if remap[i] < 0 {
			continue
		}
		adj := make([]int, 0, len(g.Adj[i]))
		for _, j := range g.Adj[i] {
			adj = append(adj, remap[j])
		}
		out.Nodes = append(out.Nodes, node)
		out.Adj = append(out.Adj, adj)
	}
	return out
}

// Size returns the node count.
func (g *Graph[N]) Size() int { return len(g.Nodes) }

// Edges counts undirected edges.
func (g *Graph[N]) Edges() int {
	total := 0
	for _, adj := range g.Adj {
		total += len(adj)
	}
	return total / 2
}
