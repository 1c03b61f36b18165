package fmindex

// DefaultCheckpointStep is the CLI/serializer default per spec.md §6
// ("default variant (checkpointed, s=50)").
const DefaultCheckpointStep = 50

// checkpointedOracle is spec.md §4.4(c): cumulative per-symbol counts are
// snapshotted every step positions; rank(c, i) starts from the nearest
// checkpoint and scans at most step/2 bytes of L to finish the count. The
// one exception is the final partial block: no checkpoint lies past the
// end of L, so an i nearer that missing checkpoint starts from the last
// stored one and scans forward up to step-1 bytes.
//
// Tie-break (spec.md §4.4, REDESIGN FLAGS §9): when i sits exactly
// between two checkpoints, the lower-indexed (earlier) checkpoint is
// chosen and the scan proceeds forward. This is fixed deliberately, not
// left to integer-division rounding.
type checkpointedOracle struct {
	l         []byte
	table     firstOccurrenceTable
	alpha     alphabetIndex
	step      int
	sigma     int
	// checkpoints[k*sigma+cIdx] = count of alpha.byteAt(cIdx) in l[0:k*step)
	checkpoints []int32
}

func newCheckpointedOracle(l []byte, table firstOccurrenceTable, step int) (*checkpointedOracle, error) {
	if step < 1 {
		return nil, errInternalInvariantViolationf("checkpoint step must be >= 1, got %d", step)
	}

	alpha := table.alphabet()
	sigma := alpha.sigma()
	m := len(l)
	numCheckpoints := m/step + 1

	o := &checkpointedOracle{
		l:           l,
		table:       table,
		alpha:       alpha,
		step:        step,
		sigma:       sigma,
		checkpoints: make([]int32, numCheckpoints*sigma),
	}

	counts := make([]int32, sigma)
	nextCheckpoint := 0
	for i := 0; i <= m; i++ {
		if i == nextCheckpoint*step {
			copy(o.checkpoints[nextCheckpoint*sigma:(nextCheckpoint+1)*sigma], counts)
			nextCheckpoint++
		}
		if i < m {
			cIdx, _ := alpha.indexOf(l[i])
			counts[cIdx]++
		}
	}

	return o, nil
}

// rank counts occurrences of c in l[0:i) by starting from the nearest
// stored checkpoint to i (the last one, if the nearest would lie past the
// end of L) and scanning forward or backward to close the gap.
func (o *checkpointedOracle) rank(c byte, i int) int {
	cIdx, ok := o.alpha.indexOf(c)
	if !ok {
		return 0
	}

	k := nearestCheckpoint(i, o.step)
	if maxK := len(o.l) / o.step; k > maxK {
		k = maxK
	}
	checkpointPos := k * o.step
	base := int(o.checkpoints[k*o.sigma+cIdx])

	if checkpointPos <= i {
		count := 0
		for j := checkpointPos; j < i; j++ {
			if o.l[j] == c {
				count++
			}
		}
		return base + count
	}

	count := 0
	for j := i; j < checkpointPos; j++ {
		if o.l[j] == c {
			count++
		}
	}
	return base - count
}

// nearestCheckpoint picks the checkpoint index k minimizing |i - k*step|,
// breaking an exact tie toward the lower-indexed (smaller k) checkpoint.
func nearestCheckpoint(i, step int) int {
	lower := i / step
	remainder := i % step
	if remainder*2 > step {
		return lower + 1
	}
	return lower
}

func (o *checkpointedOracle) lf(i int) int {
	c := o.l[i]
	return int(o.table.get(c)) + o.rank(c, i)
}

func (o *checkpointedOracle) lfWithSymbol(c byte, i int) int {
	if _, ok := o.alpha.indexOf(c); !ok {
		return 0
	}
	return int(o.table.get(c)) + o.rank(c, i)
}
