package graph

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parity relates numbers of equal parity, leaving no node isolated
func parity(a, b int) bool {
	return a%2 == b%2 && a != b
}

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestBuildAdjacencyIsSymmetric(t *testing.T) {
	nodes := []int{1, 2, 3, 4, 5, 6, 7}
	g := Build(nodes, parity, false)
	for i, adj := range g.Adj {
		for _, j := range adj {
			found := false
			for _, back := range g.Adj[j] {
				if back == i {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("edge %d->%d has no reverse", i, j)
			}
		}
	}
}

func TestBuildAdjacencyIsLoopFree(t *testing.T) {
	g := Build([]int{1, 2, 3, 4}, func(a, b int) bool { return true }, false)
	for i, adj := range g.Adj {
		for _, j := range adj {
			assert.NotEqual(t, i, j)
		}
	}
}

func TestBuildAdjacencyIsSorted(t *testing.T) {
	g := Build([]int{2, 4, 6, 8, 10}, parity, false)
	for _, adj := range g.Adj {
		for i := 1; i < len(adj); i++ {
			assert.Less(t, adj[i-1], adj[i])
		}
	}
}

func TestBuildPrunesIsolatedNodes(t *testing.T) {
	// 99 relates to nothing under parity-with-gap
	related := func(a, b int) bool { return a != 99 && b != 99 && parity(a, b) }
	g := Build([]int{1, 3, 99, 5}, related, true)
	assert := assert.New(t)
	assert.Equal(3, g.Size())
	for i, adj := range g.Adj {
		assert.NotEmpty(adj, "node %d isolated after pruning", i)
		for _, j := range adj {
			assert.Less(j, g.Size())
		}
	}
}

func TestWalkerRandomWalkLength(t *testing.T) {
	g := Build([]int{1, 2, 3, 4, 5, 6}, parity, false)
	w := NewWalker(g, testRng())
	assert := assert.New(t)
	assert.Empty(w.RandomWalk(0))
	assert.Len(w.RandomWalk(5), 5)
	assert.Len(w.RandomWalk(17), 17)
}

func TestWalkerRestartsFromIsolatedNode(t *testing.T) {
	// nothing relates: every node is isolated, every step is a restart
	g := Build([]int{1, 2, 3}, func(a, b int) bool { return false }, false)
	w := NewWalker(g, testRng())
	walk := w.RandomWalk(50)
	assert.Len(t, walk, 50)
}

func TestWalkerStaysOnEdges(t *testing.T) {
	g := Build([]int{2, 4, 6, 8}, func(a, b int) bool { return a != b }, false)
	w := NewWalker(g, testRng())
	prev := w.Current()
	for i := 0; i < 100; i++ {
		w.Advance()
		cur := w.Current()
		assert.NotEqual(t, prev, cur)
		prev = cur
	}
}

func TestWalkerEmptyGraph(t *testing.T) {
	g := Build([]int{}, parity, false)
	w := NewWalker(g, testRng())
	assert := assert.New(t)
	assert.Empty(w.RandomWalk(5))
	assert.Equal(0, w.Current())
	w.Advance() // must not panic
}

func TestWalkerCursorContinuity(t *testing.T) {
	// the cursor stays where the previous walk ended: on a two-node path
	// the first element of the next walk is determined by the last step
	g := Build([]int{1, 3}, parity, false)
	w := NewWalker(g, testRng())
	first := w.RandomWalk(3)
	second := w.RandomWalk(1)
	// walk of 3 on a 2-cycle alternates, so the next current is the
	// opposite of the walk's last element
	assert.NotEqual(t, first[2], second[0])
}
