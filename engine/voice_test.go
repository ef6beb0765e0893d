package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed<<1|1))
}

func TestMultPermutationIsTruePermutation(t *testing.T) {
	for n := 2; n <= 24; n++ {
		for _, k := range CoprimesOf(n) {
			t.Run(fmt.Sprintf("n=%d k=%d", n, k), func(t *testing.T) {
				seq := MultPermutation(n, k)
				seen := make([]bool, n)
				for _, v := range seq {
					if v < 0 || v >= n || seen[v] {
						t.Fatalf("i*%d mod %d is not a permutation: %v", k, n, seq)
					}
					seen[v] = true
				}
			})
		}
	}
}

func TestCoprimesOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{1, 5, 7, 11}, CoprimesOf(12))
	assert.Equal([]int{1, 2, 3, 4, 5, 6}, CoprimesOf(7))
}

func TestRegisterStaysInBounds(t *testing.T) {
	r := newRegister(3, 6, testRng(1))
	prev := r.oct
	for i := 0; i < 1000; i++ {
		oct := r.step()
		if oct < 3 || oct > 6 {
			t.Fatalf("register escaped bounds: %d", oct)
		}
		if diff := oct - prev; diff < -1 || diff > 1 {
			t.Fatalf("register moved more than one step: %d -> %d", prev, oct)
		}
		prev = oct
	}
}

func TestStrumPatternStaysInChord(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		s := newStrum(4, 1, testRng(uint64(trial)))
		for i := 0; i < 20; i++ {
			idx, emit := s.next()
			assert.True(t, emit)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 4)
		}
	}
}

func TestStrumDividerSuppressesEveryNth(t *testing.T) {
	s := newStrum(3, 2, testRng(9))
	emitted := 0
	for i := 0; i < 100; i++ {
		if _, emit := s.next(); emit {
			emitted++
		}
	}
	assert.Equal(t, 50, emitted)
}

func TestStrumShapesHandleSmallChords(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for _, shape := range strumShapes {
			pattern := shape(n)
			assert.NotEmpty(t, pattern, "chord size %d", n)
			for _, idx := range pattern {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, n)
			}
		}
	}
}

func TestArpeggioStaysInRange(t *testing.T) {
	a := newArpeggio(4, 3, 2, 7, testRng(3))
	for i := 0; i < 1000; i++ {
		tone, oct := a.next()
		if tone < 0 || tone >= 4 {
			t.Fatalf("tone out of range: %d", tone)
		}
		if oct < 2 || oct > 7 {
			t.Fatalf("octave out of range: %d", oct)
		}
	}
}

func TestArpeggioVisitsWholeSequence(t *testing.T) {
	a := newArpeggio(3, 2, 3, 6, testRng(4))
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		a.next()
		seen[a.cursor] = true
	}
	assert.Len(t, seen, len(a.seq))
}

func TestArpeggioSingleTone(t *testing.T) {
	// degenerate one-note chord must not panic
	a := newArpeggio(1, 1, 3, 6, testRng(5))
	for i := 0; i < 10; i++ {
		tone, _ := a.next()
		assert.Equal(t, 0, tone)
	}
}
