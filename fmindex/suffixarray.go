package fmindex

import "golang.org/x/exp/slices"

// buildSuffixArray sorts every suffix of t (which must already carry its
// terminator as t's final byte) by prefix-rank doubling: start from
// single-byte ranks, then repeatedly double the compared prefix length,
// re-ranking by the pair (rank[i], rank[i+k]) with a stable sort, until
// every rank is distinct or the doubling length reaches m. Each round is
// a comparison sort of O(m log m) comparisons and there are at most about
// log2(m) rounds, so the worst case is O(m log^2 m) comparisons, reached
// on highly repetitive text. It never materializes a rotation or
// suffix as its own string -- every suffix is just an integer offset into
// t for the whole sort.
func buildSuffixArray(t []byte, terminator byte) []int {
	m := len(t)
	sa := make([]int, m)
	rank := make([]int, m)
	next := make([]int, m)

	for i := 0; i < m; i++ {
		sa[i] = i
		rank[i] = charOrder(terminator, t[i])
	}

	rankAt := func(i int) int {
		if i >= m {
			return beyondEndRank
		}
		return rank[i]
	}

	for k := 1; ; k *= 2 {
		less := func(a, b int) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a+k) < rankAt(b+k)
		}

		slices.SortStableFunc(sa, func(a, b int) bool { return less(a, b) })

		next[sa[0]] = 0
		distinct := true
		for i := 1; i < m; i++ {
			next[sa[i]] = next[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				next[sa[i]]++
			} else {
				distinct = false
			}
		}
		copy(rank, next)

		if distinct || k >= m {
			break
		}
	}

	return sa
}

// beyondEndRank is smaller than any rank a real position can hold
// (including the terminator's charOrder of -1), representing "this
// suffix ended before reaching this comparison offset."
const beyondEndRank = -1 << 30

// charOrder orders a byte for the initial ranking pass, placing the
// terminator strictly below every other byte regardless of its numeric
// value.
func charOrder(terminator, b byte) int {
	if b == terminator {
		return -1
	}
	if b < terminator {
		return int(b)
	}
	return int(b) - 1
}
