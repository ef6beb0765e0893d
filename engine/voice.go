package engine

import (
	"math/rand/v2"

	"github.com/ncg777/musicbox2/util"
)

// register is the bounded octave random walk every voice carries: at most
// one step per emitted note, clamped to the configured range.
type register struct {
	oct, min, max int
	rng           *rand.Rand
}

func newRegister(min, max int, rng *rand.Rand) *register {
	return &register{
		oct: min + (max-min)/2,
		min: min,
		max: max,
		rng: rng,
	}
}

func (r *register) step() int {
	r.oct = util.Clamp(r.oct+r.rng.IntN(3)-1, r.min, r.max)
	return r.oct
}

// strum cycles through a fixed shape of chord-tone indices. A new shape is
// chosen on every chord change; a divider > 1 suppresses every Nth
// trigger to halve (or further divide) the voice's effective rate.
type strum struct {
	pattern []int
	cursor  int
	divider int
	count   int
}

// strumShapes are the available ornamentation shapes, each a function of
// the chord size.
var strumShapes = []func(n int) []int{
	shapeAscending,
	shapeDescending,
	shapeAlternatingBass,
	shapeBrokenSkip,
	shapePendulum,
	shapeCascade,
	shapeTravis,
}

func newStrum(chordSize, divider int, rng *rand.Rand) *strum {
	shape := strumShapes[rng.IntN(len(strumShapes))]
	return &strum{
		pattern: shape(chordSize),
		divider: util.Max(divider, 1),
	}
}

// next advances the cursor and reports which chord-tone index to play and
// whether this trigger is suppressed by the divider.
func (s *strum) next() (int, bool) {
	idx := s.pattern[s.cursor]
	s.cursor = (s.cursor + 1) % len(s.pattern)
	s.count++
	if s.divider > 1 && s.count%s.divider == 0 {
		return idx, false
	}
	return idx, true
}

func shapeAscending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func shapeDescending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

func shapeAlternatingBass(n int) []int {
	var out []int
	for i := 1; i < n; i++ {
		out = append(out, 0, i)
	}
	if len(out) == 0 {
		out = []int{0}
	}
	return out
}

func shapeBrokenSkip(n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		out = append(out, i, (i+2)%n)
	}
	return out
}

func shapePendulum(n int) []int {
	out := shapeAscending(n)
	for i := n - 2; i >= 1; i-- {
		out = append(out, i)
	}
	return out
}

func shapeCascade(n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		out = append(out, i, (i+1)%n, (i+2)%n)
	}
	return out
}

func shapeTravis(n int) []int {
	if n < 2 {
		return []int{0}
	}
	bass2 := 2 % n
	return []int{0, n - 1, bass2, n - 1}
}

// MultPermutation applies the multiplicative permutation i -> (i*k) mod n.
// For k coprime to n the result is a true permutation of 0..n-1: a single
// full cycle, not a partial orbit.
func MultPermutation(n, k int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i * k % n
	}
	return out
}

// CoprimesOf lists the integers in 1..n-1 coprime to n.
func CoprimesOf(n int) []int {
	var out []int
	for k := 1; k < n; k++ {
		if util.Gcd(n, k) == 1 {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		out = []int{1}
	}
	return out
}

// arpeggio walks a multiplicatively permuted multi-octave extension of the
// chord tones in runs of 2..6 steps, reversing at the boundaries and
// shifting its persistent base octave by one step when it hits them.
type arpeggio struct {
	seq       []int
	tones     int
	cursor    int
	dir       int
	stepsLeft int
	baseOct   int
	minOct    int
	maxOct    int
	rng       *rand.Rand
}

func newArpeggio(tones, octaves, minOct, maxOct int, rng *rand.Rand) *arpeggio {
	n := util.Max(tones*octaves, 1)
	ks := CoprimesOf(n)
	k := ks[rng.IntN(len(ks))]
	return &arpeggio{
		seq:     MultPermutation(n, k),
		tones:   util.Max(tones, 1),
		dir:     1,
		baseOct: minOct + (maxOct-minOct)/2,
		minOct:  minOct,
		maxOct:  maxOct,
		rng:     rng,
	}
}

// next returns the chord-tone index and octave of the current position,
// then advances the cursor.
func (a *arpeggio) next() (int, int) {
	v := a.seq[a.cursor]
	tone := v % a.tones
	oct := util.Clamp(a.baseOct+v/a.tones, a.minOct, a.maxOct)

	if a.stepsLeft <= 0 {
		a.newRun()
	}
	nxt := a.cursor + a.dir
	if nxt < 0 || nxt >= len(a.seq) {
		a.baseOct = util.Clamp(a.baseOct+a.dir, a.minOct, a.maxOct)
		a.dir = -a.dir
		nxt = a.cursor + a.dir
		if nxt < 0 || nxt >= len(a.seq) {
			nxt = a.cursor
		}
	}
	a.cursor = nxt
	a.stepsLeft--
	return tone, oct
}

// newRun picks a fresh direction and a run of 2..6 steps, forced to
// reverse at either boundary.
func (a *arpeggio) newRun() {
	if a.rng.IntN(2) == 0 {
		a.dir = -1
	} else {
		a.dir = 1
	}
	if a.cursor == 0 {
		a.dir = 1
	}
	if a.cursor == len(a.seq)-1 {
		a.dir = -1
	}
	a.stepsLeft = 2 + a.rng.IntN(5)
}
