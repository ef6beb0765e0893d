package graph

import (
	"math/rand/v2"
)

// Walker is a small stateful cursor over an immutable graph. Multiple
// walkers may share one graph; each keeps only its current index and a
// random source.
type Walker[N any] struct {
	g   *Graph[N]
	cur int
	rng *rand.Rand
}

// NewWalker starts at a uniformly random node. An empty graph is legal:
// the walker then yields zero values and empty walks.
func NewWalker[N any](g *Graph[N], rng *rand.Rand) *Walker[N] {
	w := &Walker[N]{g: g, rng: rng}
	if g.Size() > 0 {
		w.cur = rng.IntN(g.Size())
	}
	return w
}

// Current returns the node under the cursor.
func (w *Walker[N]) Current() N {
	var zero N
	if w.g.Size() == 0 {
		return zero
	}
	return w.g.Nodes[w.cur]
}

// Advance moves to a uniformly random neighbor. An isolated current node
// forces a random restart anywhere in the graph, so no walk ever stalls.
func (w *Walker[N]) Advance() {
	if w.g.Size() == 0 {
		return
	}
	adj := w.g.Adj[w.cur]
	if len(adj) == 0 {
		w.cur = w.rng.IntN(w.g.Size())
		return
	}
	w.cur = adj[w.rng.IntN(len(adj))]
}

// RandomWalk returns exactly n nodes (none for an empty graph), leaving
// the cursor at the end of the walk so successive walks stay continuous.
func (w *Walker[N]) RandomWalk(n int) []N {
	var out []N
	if w.g.Size() == 0 {
		return out
	}
	for i := 0; i < n; i++ {
		out = append(out, w.Current())
		w.Advance()
	}
	return out
}
