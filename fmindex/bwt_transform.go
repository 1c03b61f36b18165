package fmindex

// forwardBWT emits L from a suffix array sa over t (t already carries its
// terminator as its final byte): L[i] = t[sa[i]-1], wrapping to the
// terminator when sa[i] == 0. Spec.md §4.2.
func forwardBWT(t []byte, sa []int) []byte {
	m := len(t)
	l := make([]byte, m)
	for i, suffixStart := range sa {
		if suffixStart == 0 {
			l[i] = t[m-1]
			continue
		}
		l[i] = t[suffixStart-1]
	}
	return l
}

// inverseBWT reconstructs the original text (terminator stripped) from L
// alone, per spec.md §4.2: build C and a rank oracle over L, find the row
// r* where L[r*] == terminator, then walk LF m-1 times, writing one byte
// per step from the end of the output backward.
//
// This is a one-shot operation, not the hot query path a built Index
// serves, so it always uses the naive oracle internally regardless of
// what variant the caller eventually builds an Index with.
func inverseBWT(l []byte, terminator byte) ([]byte, error) {
	m := len(l)
	if m == 0 {
		return nil, errInternalInvariantViolationf("inverseBWT: L must be non-empty")
	}

	table := newFirstOccurrenceTable(l)
	oracle := newNaiveOracle(l, table)

	rStar := -1
	for i, b := range l {
		if b == terminator {
			rStar = i
			break
		}
	}
	if rStar < 0 {
		return nil, errInternalInvariantViolationf("inverseBWT: no row of L equals the terminator byte")
	}

	out := make([]byte, m-1)
	i := rStar
	for k := m - 2; k >= 0; k-- {
		i = oracle.lf(i)
		if i < 0 || i >= m {
			return nil, errInternalInvariantViolationf("inverseBWT: LF(%d) landed outside [0, %d)", i, m)
		}
		out[k] = l[i]
	}
	return out, nil
}
