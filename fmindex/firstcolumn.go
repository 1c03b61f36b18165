package fmindex

// firstOccurrenceTable is the C table (spec.md "First-occurrence table"):
// for every byte c, the smallest row index whose F-column character is c.
// Stored densely over the full byte range rather than the teacher's
// run-length skip list (search/bwt's firstColumnSkipList), since spec.md
// §6 fixes the on-disk layout as a flat 256-entry array of 4-byte counts.
type firstOccurrenceTable struct {
	offsets [256]uint32
	present [256]bool
}

// newFirstOccurrenceTable builds C from L with one counting pass and a
// prefix sum. Absent bytes are padded to the offset of the next defined
// byte, so a range query against an absent byte naturally yields an empty
// interval (spec.md §4.3: "the oracle must return 0 for absent c").
func newFirstOccurrenceTable(l []byte) firstOccurrenceTable {
	var counts [256]uint32
	var present [256]bool
	for _, b := range l {
		counts[b]++
		present[b] = true
	}

	var table firstOccurrenceTable
	table.present = present
	cumulative := uint32(0)
	for c := 0; c < 256; c++ {
		table.offsets[c] = cumulative
		cumulative += counts[c]
	}
	return table
}

// get returns C[c]. For a byte never seen in L, this is the offset where c
// would have sorted into F had it occurred, which is exactly what makes a
// query for an absent byte collapse to an empty [top, bot) interval.
func (t firstOccurrenceTable) get(c byte) uint32 {
	return t.offsets[c]
}

// isPresent reports whether c occurs anywhere in L.
func (t firstOccurrenceTable) isPresent(c byte) bool {
	return t.present[c]
}

// alphabet returns the alphabetIndex for every byte present in L, used by
// the "full" rank oracle to densely address its FMc table.
func (t firstOccurrenceTable) alphabet() alphabetIndex {
	return newAlphabetIndex(t.present)
}
