// Package pcs models pitch-class sets over the 12-tone universe and
// enumerates the full universe of rotation-distinct sets via canonical
// binary necklaces.
package pcs

import (
	"fmt"
	"math/bits"

	"github.com/ncg777/musicbox2/util"
)

// Set is an immutable pitch-class set: a 12-bit membership vector plus two
// tags locating it in the enumeration. Order is the index within its
// cardinality class, Transpose the rotation offset from the canonical
// representative. Equality is membership only; use Equal, not ==.
type Set struct {
	mask      uint16
	Order     int
	Transpose int
}

// NewSet builds a set from explicit pitch classes (folded mod 12).
func NewSet(classes ...int) Set {
	var m uint16
	for _, pc := range classes {
		m |= 1 << uint(util.Mod12(pc))
	}
	return Set{mask: m}
}

// ParseBits decodes a 12-character bit string ("101010101010"), earliest
// pitch class first.
func ParseBits(s string) (Set, error) {
	if len(s) != 12 {
		return Set{}, fmt.Errorf("bit string must be 12 characters, got %d", len(s))
	}
	var m uint16
	for i, c := range s {
		switch c {
		case '1':
			m |= 1 << uint(i)
		case '0':
		default:
			return Set{}, fmt.Errorf("bit string has invalid character %q", c)
		}
	}
	return Set{mask: m}, nil
}

// Bits renders the membership vector as a 12-character bit string.
func (s Set) Bits() string {
	b := make([]byte, 12)
	for i := 0; i < 12; i++ {
		if s.Contains(i) {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

func (s Set) String() string { return s.Bits() }

func (s Set) Contains(pc int) bool {
	return s.mask&(1<<uint(util.Mod12(pc))) != 0
}

func (s Set) Cardinality() int {
	return bits.OnesCount16(s.mask)
}

// Equal compares membership only, ignoring the enumeration tags.
func (s Set) Equal(o Set) bool {
	return s.mask == o.mask
}

// Classes lists the member pitch classes in ascending order.
func (s Set) Classes() []int {
	out := make([]int, 0, s.Cardinality())
	for pc := 0; pc < 12; pc++ {
		if s.Contains(pc) {
			out = append(out, pc)
		}
	}
	return out
}

// Rotate transposes the set by n semitones, producing a new set whose
// Transpose tag is advanced accordingly.
func (s Set) Rotate(n int) Set {
	n = util.Mod12(n)
	m := (s.mask<<uint(n) | s.mask>>uint(12-n)) & 0x0fff
	return Set{mask: m, Order: s.Order, Transpose: util.Mod12(s.Transpose + n)}
}

// Common counts the pitch classes shared with o.
func (s Set) Common(o Set) int {
	return bits.OnesCount16(s.mask & o.mask)
}

// IntervalVector is the 6-entry histogram of unordered pitch-class
// distances within the set. Its entries always sum to C(k,2) for
// cardinality k.
func (s Set) IntervalVector() [6]int {
	var icv [6]int
	classes := s.Classes()
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			d := classes[j] - classes[i]
			if d > 6 {
				d = 12 - d
			}
			icv[d-1]++
		}
	}
	return icv
}

// HasIntervalClass reports whether any unordered pair of members lies the
// given interval class apart (1..6).
func (s Set) HasIntervalClass(ic int) bool {
	classes := s.Classes()
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			d := classes[j] - classes[i]
			if d > 6 {
				d = 12 - d
			}
			if d == ic {
				return true
			}
		}
	}
	return false
}
