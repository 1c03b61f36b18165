package fmindex

// fullOracle is spec.md §4.4(b): a fully materialized LF table plus an
// FMc table giving, for every row i and every byte c actually present in
// L, what LF would return were L[i] replaced by c (i.e. C[c]+rank(c,i)).
//
// REDESIGN FLAGS (spec.md §9) calls out the source's hash map keyed by
// (i, c) as the thing to remove from the hot path: here FMc is a flat
// []int32 addressed i*sigma+cIdx through a dense alphabet remap
// (alphabetIndex), not a map lookup.
type fullOracle struct {
	table firstOccurrenceTable
	alpha alphabetIndex
	lfTbl []int32
	fmc   []int32
	sigma int
}

// newFullOracle indexes FM[i] and FMc[i][c] for every i in [0, m], the
// full range spec.md §4.5's backward search walks top/bot across
// (bot can equal m for an unbounded upper interval edge).
func newFullOracle(l []byte, table firstOccurrenceTable) *fullOracle {
	m := len(l)
	alpha := table.alphabet()
	sigma := alpha.sigma()

	o := &fullOracle{
		table: table,
		alpha: alpha,
		lfTbl: make([]int32, m+1),
		fmc:   make([]int32, (m+1)*sigma),
		sigma: sigma,
	}

	counts := make([]int32, sigma)
	for i := 0; i < m; i++ {
		for cIdx := 0; cIdx < sigma; cIdx++ {
			o.fmc[i*sigma+cIdx] = int32(table.get(alpha.byteAt(cIdx))) + counts[cIdx]
		}
		c := l[i]
		cIdx, _ := alpha.indexOf(c)
		o.lfTbl[i] = int32(table.get(c)) + counts[cIdx]
		counts[cIdx]++
	}
	for cIdx := 0; cIdx < sigma; cIdx++ {
		o.fmc[m*sigma+cIdx] = int32(table.get(alpha.byteAt(cIdx))) + counts[cIdx]
	}

	return o
}

func (o *fullOracle) rank(c byte, i int) int {
	if _, ok := o.alpha.indexOf(c); !ok {
		return 0
	}
	return o.lfWithSymbol(c, i) - int(o.table.get(c))
}

func (o *fullOracle) lf(i int) int {
	return int(o.lfTbl[i])
}

func (o *fullOracle) lfWithSymbol(c byte, i int) int {
	cIdx, ok := o.alpha.indexOf(c)
	if !ok {
		return 0
	}
	return int(o.fmc[i*o.sigma+cIdx])
}
