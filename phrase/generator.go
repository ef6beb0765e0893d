package phrase

import (
	"math/rand/v2"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
	"github.com/ncg777/musicbox2/util"
)

// Strategy selects how chords are assigned to the bars of a phrase.
type Strategy int

const (
	// StrategyScaleSubset draws four chords from a rotated reference
	// scale and lays them out two bars each.
	StrategyScaleSubset Strategy = iota
	// StrategyGraphWalk arranges a 5-step chord-graph walk in an arch.
	StrategyGraphWalk
)

// ParseStrategy maps the config token to a Strategy.
func ParseStrategy(s string) Strategy {
	if s == "walk" {
		return StrategyGraphWalk
	}
	return StrategyScaleSubset
}

// arch maps the 8 bars onto indices of a 5-step walk: bars 0 and 7 hold
// the walk's most distant elements, bar 3 the walk's start.
var arch = [constants.PhraseBars]int{3, 2, 1, 0, 1, 2, 3, 4}

// referenceScale is the fixed 8-note subset of the pitch universe the
// scale-subset strategy rotates (a dominant bebop scale on C).
var referenceScale = []int{0, 2, 4, 5, 7, 9, 10, 11}

// chordSizes are the subset cardinalities drawn per phrase, two bars each.
var chordSizes = [4]int{3, 4, 4, 5}

// layout reorders the sorted chords before bar assignment.
var layout = [4]int{0, 2, 3, 1}

// keyOffset is subtracted from the scale rotation to derive the key.
const keyOffset = 5

// Generator walks the two relation graphs and owns the scale-rotation
// state of the scale-subset strategy. It is the only mutator of phrases.
type Generator struct {
	strategy Strategy
	chords   *graph.Walker[pcs.Set]
	cells    *graph.Walker[rhythm.Cell]
	rng      *rand.Rand

	rotation  int
	key       int
	lastChord pcs.Set
	lastCell  rhythm.Cell
}

func New(chordGraph *graph.Graph[pcs.Set], rhythmGraph *graph.Graph[rhythm.Cell], strategy Strategy, rng *rand.Rand) *Generator {
	return &Generator{
		strategy: strategy,
		chords:   graph.NewWalker(chordGraph, rng),
		cells:    graph.NewWalker(rhythmGraph, rng),
		rng:      rng,
		lastCell: rhythm.DefaultCell,
	}
}

// Key is the key value of the last scale-subset phrase, 0..11.
func (g *Generator) Key() int { return g.key }

// Next produces a new phrase. It never fails: sparse graphs degrade to
// repetition of the last known-good material.
func (g *Generator) Next() Phrase {
	var p Phrase
	cells := g.cellArch()
	var chords [constants.PhraseBars]pcs.Set
	switch g.strategy {
	case StrategyGraphWalk:
		chords = g.chordArch()
	default:
		chords = g.scaleSubsetChords()
	}
	for i := range p.Bars {
		p.Bars[i] = Bar{Chord: chords[i], Cell: cells[i]}
	}
	return p
}

// cellArch walks the rhythm graph and folds the walk into the arch. Both
// strategies use it for rhythm.
func (g *Generator) cellArch() [constants.PhraseBars]rhythm.Cell {
	walk := g.cells.RandomWalk(constants.WalkLength)
	if len(walk) < constants.WalkLength {
		log.WithFields(log.Fields{
			"function": "Generator.cellArch",
			"got":      len(walk),
		}).Warn("degraded phrase: rhythm graph too sparse, repeating last cell")
		for len(walk) < constants.WalkLength {
			walk = append(walk, g.lastCell)
		}
	}
	g.lastCell = walk[len(walk)-1]
	var out [constants.PhraseBars]rhythm.Cell
	for bar, idx := range arch {
		out[bar] = walk[idx]
	}
	return out
}

// chordArch is the graph-walk strategy's chord assignment.
func (g *Generator) chordArch() [constants.PhraseBars]pcs.Set {
	walk := g.chords.RandomWalk(constants.WalkLength)
	if len(walk) < constants.WalkLength {
		log.WithFields(log.Fields{
			"function": "Generator.chordArch",
			"got":      len(walk),
		}).Warn("degraded phrase: chord graph too sparse, repeating last chord")
		for len(walk) < constants.WalkLength {
			walk = append(walk, g.lastChord)
		}
	}
	g.lastChord = walk[len(walk)-1]
	var out [constants.PhraseBars]pcs.Set
	for bar, idx := range arch {
		out[bar] = walk[idx]
	}
	return out
}

// scaleSubsetChords rotates the reference scale a fifth up or down from
// its previous rotation, draws one minor-second-free subset per configured
// size, sorts the draws in key-relative order, permutes them, and assigns
// each to two consecutive bars.
func (g *Generator) scaleSubsetChords() [constants.PhraseBars]pcs.Set {
	if g.rng.IntN(2) == 0 {
		g.rotation = util.Mod12(g.rotation + 7)
	} else {
		g.rotation = util.Mod12(g.rotation - 7)
	}
	g.key = util.Mod12(g.rotation - keyOffset)

	scale := make([]int, len(referenceScale))
	for i, pc := range referenceScale {
		scale[i] = util.Mod12(pc + g.rotation)
	}

	var draws [4]pcs.Set
	for i, size := range chordSizes {
		draws[i] = g.drawSubset(scale, size)
		// The two size-4 draws must stay distinct or the phrase
		// collapses to three chords.
		for attempts := 0; attempts < 16 && duplicateDraw(draws[:i], draws[i]); attempts++ {
			draws[i] = g.drawSubset(scale, size)
		}
	}

	sorted := draws[:]
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessKeyRelative(sorted[i], sorted[j], g.key)
	})

	var out [constants.PhraseBars]pcs.Set
	for slot, src := range layout {
		out[2*slot] = sorted[src]
		out[2*slot+1] = sorted[src]
	}
	g.lastChord = out[constants.PhraseBars-1]
	return out
}

func duplicateDraw(prev []pcs.Set, candidate pcs.Set) bool {
	for _, p := range prev {
		if p.Equal(candidate) {
			return true
		}
	}
	return false
}

// drawSubset picks a uniformly random size-k subset of the scale whose
// members contain no minor-second (interval class 1) pair. If no subset
// qualifies the constraint is abandoned for this draw rather than failing.
func (g *Generator) drawSubset(scale []int, size int) pcs.Set {
	var candidates []pcs.Set
	combinations(len(scale), size, func(idx []int) {
		classes := make([]int, len(idx))
		for i, j := range idx {
			classes[i] = scale[j]
		}
		s := pcs.NewSet(classes...)
		if !s.HasIntervalClass(1) {
			candidates = append(candidates, s)
		}
	})
	if len(candidates) == 0 {
		log.WithFields(log.Fields{
			"function": "Generator.drawSubset",
			"size":     size,
		}).Warn("degraded phrase: no minor-second-free subset, drawing unconstrained")
		idx := g.rng.Perm(len(scale))[:size]
		classes := make([]int, size)
		for i, j := range idx {
			classes[i] = scale[j]
		}
		return pcs.NewSet(classes...)
	}
	return candidates[g.rng.IntN(len(candidates))]
}

// lessKeyRelative orders chords by their pitch classes transposed down by
// the key, compared lexicographically.
func lessKeyRelative(a, b pcs.Set, key int) bool {
	ka := keyRelativeClasses(a, key)
	kb := keyRelativeClasses(b, key)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return len(ka) < len(kb)
}

func keyRelativeClasses(s pcs.Set, key int) []int {
	classes := s.Classes()
	out := make([]int, len(classes))
	for i, pc := range classes {
		out[i] = util.Mod12(pc - key)
	}
	sort.Ints(out)
	return out
}

// combinations visits every size-k index subset of 0..n-1 in
// lexicographic order.
func combinations(n, k int, visit func(idx []int)) {
	if k < 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
