package pcs

// Related is the chord-similarity predicate used to build the chord
// relation graph. Two sets are related when their content differs, they
// share at least minCommon pitch classes, and their interval-class vectors
// are close: differing in at most 2 of 6 positions, or equal under some
// rotation or under reversal. When equalCard is set the sets must also
// have the same cardinality.
func Related(a, b Set, minCommon int, equalCard bool) bool {
	if a.Equal(b) {
		return false
	}
	if a.Common(b) < minCommon {
		return false
	}
	if equalCard && a.Cardinality() != b.Cardinality() {
		return false
	}
	av, bv := a.IntervalVector(), b.IntervalVector()
	return icvClose(av, bv) || icvRotationEqual(av, bv) || icvReversalEqual(av, bv)
}

func icvClose(a, b [6]int) bool {
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff <= 2
}

func icvRotationEqual(a, b [6]int) bool {
	for r := 1; r < 6; r++ {
		eq := true
		for i := range a {
			if a[i] != b[(i+r)%6] {
				eq = false
				break
			}
		}
		if eq {
			return true
		}
	}
	return false
}

func icvReversalEqual(a, b [6]int) bool {
	for i := range a {
		if a[i] != b[5-i] {
			return false
		}
	}
	return true
}
