package pcs

// Necklaces enumerates every canonical binary-style necklace of the given
// length over the given alphabet using the FKM algorithm. A candidate is
// accepted only when the length is an exact multiple of its minimal period,
// which makes each output the lexicographically minimal rotation of its
// class: no duplicates, no omissions. The output order is fully
// deterministic for fixed arguments.
func Necklaces(length, alphabet int) [][]int {
	if length <= 0 || alphabet <= 0 {
		return nil
	}
	var out [][]int
	// Scratch buffer shared across the recursion; position 0 is a sentinel.
	a := make([]int, length+1)
	var gen func(t, p int)
	gen = func(t, p int) {
		if t > length {
			if length%p == 0 {
				neck := make([]int, length)
				copy(neck, a[1:])
				out = append(out, neck)
			}
			return
		}
		a[t] = a[t-p]
		gen(t+1, p)
		for j := a[t-p] + 1; j < alphabet; j++ {
			a[t] = j
			gen(t+1, t)
		}
	}
	gen(1, 1)
	return out
}

// period computes the minimal rotation period of a necklace.
func period(neck []int) int {
	n := len(neck)
	for p := 1; p < n; p++ {
		if n%p != 0 {
			continue
		}
		ok := true
		for i := p; i < n; i++ {
			if neck[i] != neck[i-p] {
				ok = false
				break
			}
		}
		if ok {
			return p
		}
	}
	return n
}

// Universe derives every rotation-distinct pitch-class set from the
// canonical binary necklaces of length 12. Each necklace yields one set per
// distinct rotation of its period, tagged with a per-cardinality Order
// counter and the rotation amount as Transpose. The empty set is appended
// once as a degenerate member. The sequence is deterministic and is the
// basis for any precomputed graph data.
func Universe() []Set {
	var sets []Set
	orders := make(map[int]int)
	for _, neck := range Necklaces(12, 2) {
		var classes []int
		for pc, digit := range neck {
			if digit == 1 {
				classes = append(classes, pc)
			}
		}
		if len(classes) == 0 {
			continue
		}
		base := NewSet(classes...)
		order := orders[base.Cardinality()]
		orders[base.Cardinality()]++
		for r := 0; r < period(neck); r++ {
			s := base.Rotate(r)
			s.Order = order
			s.Transpose = r
			sets = append(sets, s)
		}
	}
	sets = append(sets, Set{})
	return sets
}
