package fmindex

// alphabetIndex maps every byte actually present in a sequence to a dense
// index in [0, sigma), and back. This lets per-row-per-symbol tables (the
// "full" and "checkpointed" rank oracles' FMc/checkpoint tables, see the
// REDESIGN FLAGS on the hash-map variant) be a flat contiguous array
// addressed i*sigma+cIdx instead of a map keyed by (i, c).
type alphabetIndex struct {
	present    [256]bool
	denseIdx   [256]int
	bytesByIdx []byte
}

// newAlphabetIndex builds the dense remap from a presence bitmap over the
// full byte range.
func newAlphabetIndex(present [256]bool) alphabetIndex {
	ai := alphabetIndex{present: present}
	idx := 0
	for c := 0; c < 256; c++ {
		if present[c] {
			ai.denseIdx[c] = idx
			ai.bytesByIdx = append(ai.bytesByIdx, byte(c))
			idx++
		} else {
			ai.denseIdx[c] = -1
		}
	}
	return ai
}

// sigma returns the size of the alphabet actually present.
func (ai alphabetIndex) sigma() int {
	return len(ai.bytesByIdx)
}

// indexOf returns the dense index of c, or ok=false if c never occurs.
func (ai alphabetIndex) indexOf(c byte) (int, bool) {
	i := ai.denseIdx[c]
	return i, i >= 0
}

// byteAt returns the byte occupying dense index i.
func (ai alphabetIndex) byteAt(i int) byte {
	return ai.bytesByIdx[i]
}
