package pcs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNecklaceCountLength12(t *testing.T) {
	necks := Necklaces(12, 2)
	assert.Equal(t, 352, len(necks))
}

func TestNecklacesHaveNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, neck := range Necklaces(12, 2) {
		key := fmt.Sprint(neck)
		if seen[key] {
			t.Fatalf("duplicate necklace %v", key)
		}
		seen[key] = true
	}
}

func TestNecklacesAreCanonical(t *testing.T) {
	// every output is the lexicographically minimal rotation of itself
	for _, neck := range Necklaces(8, 2) {
		n := len(neck)
		for r := 1; r < n; r++ {
			for i := 0; i < n; i++ {
				a, b := neck[i], neck[(i+r)%n]
				if a != b {
					if a > b {
						t.Fatalf("necklace %v is not minimal at rotation %d", neck, r)
					}
					break
				}
			}
		}
	}
}

func TestSmallNecklaceCounts(t *testing.T) {
	cases := map[int]int{
		1: 2,
		2: 3,
		3: 4,
		4: 6,
		5: 8,
		6: 14,
	}
	for length, want := range cases {
		t.Run(fmt.Sprintf("length %d", length), func(t *testing.T) {
			assert.Equal(t, want, len(Necklaces(length, 2)))
		})
	}
}

func TestUniverseIntervalVectorSums(t *testing.T) {
	for _, s := range Universe() {
		k := s.Cardinality()
		want := k * (k - 1) / 2
		sum := 0
		for _, v := range s.IntervalVector() {
			sum += v
		}
		if sum != want {
			t.Fatalf("set %v: interval vector sums to %d, want C(%d,2)=%d", s, sum, k, want)
		}
	}
}

func TestUniverseIsDeterministic(t *testing.T) {
	a := Universe()
	b := Universe()
	assert := assert.New(t)
	assert.Equal(len(a), len(b))
	for i := range a {
		assert.True(a[i].Equal(b[i]))
		assert.Equal(a[i].Order, b[i].Order)
		assert.Equal(a[i].Transpose, b[i].Transpose)
	}
}

func TestUniverseMembershipIsDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Universe() {
		if seen[s.Bits()] {
			t.Fatalf("duplicate membership %v", s.Bits())
		}
		seen[s.Bits()] = true
	}
}

func TestUniverseIncludesEmptySet(t *testing.T) {
	sets := Universe()
	last := sets[len(sets)-1]
	assert.Equal(t, 0, last.Cardinality())
}
