package fmindex

import "testing"

// buildAllOracles returns all three rank oracle variants over the same L,
// used to check P5 (oracle equivalence) and P7 (step independence).
func buildAllOracles(t *testing.T, l []byte, step int) map[string]rankOracle {
	t.Helper()
	table := newFirstOccurrenceTable(l)

	checkpointed, err := newCheckpointedOracle(l, table, step)
	if err != nil {
		t.Fatalf("newCheckpointedOracle: %v", err)
	}

	return map[string]rankOracle{
		"naive":        newNaiveOracle(l, table),
		"full":         newFullOracle(l, table),
		"checkpointed": checkpointed,
	}
}

// TestRankOracle_Equivalence is spec.md §8's P5: for identical L, all
// three variants must agree on every rank query.
func TestRankOracle_Equivalence(t *testing.T) {
	text := []byte("abracadabra")
	terminator := byte(0x00)
	tPrime := append(append([]byte{}, text...), terminator)
	sa := buildSuffixArray(tPrime, terminator)
	l := forwardBWT(tPrime, sa)

	for _, step := range []int{1, 2, 3, 5, 50} {
		oracles := buildAllOracles(t, l, step)
		for i := 0; i <= len(l); i++ {
			for c := 0; c < 256; c++ {
				want := oracles["naive"].rank(byte(c), i)
				for name, o := range oracles {
					if name == "naive" {
						continue
					}
					if got := o.rank(byte(c), i); got != want {
						t.Fatalf("step=%d oracle=%s rank(%q, %d) = %d, want %d (naive)", step, name, byte(c), i, got, want)
					}
				}
			}
		}
	}
}

// TestCheckpointedOracle_TieBreak verifies spec.md §4.4's fixed tie-break:
// exactly halfway between two checkpoints, the lower-indexed checkpoint
// is used (equivalent to a forward scan from it).
func TestCheckpointedOracle_TieBreak(t *testing.T) {
	// step=4: checkpoints at 0, 4, 8, ...; i=2 is the exact midpoint
	// between checkpoints 0 and 1.
	got := nearestCheckpoint(2, 4)
	if got != 0 {
		t.Fatalf("nearestCheckpoint(2, 4) = %d, want 0 (lower-indexed tie-break)", got)
	}
	// Off the midpoint, the nearer checkpoint wins regardless of side.
	if got := nearestCheckpoint(3, 4); got != 1 {
		t.Fatalf("nearestCheckpoint(3, 4) = %d, want 1", got)
	}
	if got := nearestCheckpoint(1, 4); got != 0 {
		t.Fatalf("nearestCheckpoint(1, 4) = %d, want 0", got)
	}
}

// TestCheckpointedOracle_StepIndependence is spec.md §8's P7: for every
// checkpoint step >= 1, the checkpointed oracle must agree with a naive
// rank oracle built on the same L.
func TestCheckpointedOracle_StepIndependence(t *testing.T) {
	text := []byte("ACGACTGCGAGCTCGA")
	terminator := byte(0x00)
	tPrime := append(append([]byte{}, text...), terminator)
	sa := buildSuffixArray(tPrime, terminator)
	l := forwardBWT(tPrime, sa)
	table := newFirstOccurrenceTable(l)
	naive := newNaiveOracle(l, table)

	for step := 1; step <= len(l)+1; step++ {
		cp, err := newCheckpointedOracle(l, table, step)
		if err != nil {
			t.Fatalf("step=%d: %v", step, err)
		}
		for i := 0; i <= len(l); i++ {
			for _, c := range l {
				if got, want := cp.rank(c, i), naive.rank(c, i); got != want {
					t.Fatalf("step=%d rank(%q, %d) = %d, want %d", step, c, i, got, want)
				}
			}
		}
	}
}

// TestRankOracle_AbsentByteReturnsZero checks spec.md §4.3's requirement
// that queries for a byte never seen in L return 0, for every variant.
func TestRankOracle_AbsentByteReturnsZero(t *testing.T) {
	text := []byte("aaaaa")
	terminator := byte(0x00)
	tPrime := append(append([]byte{}, text...), terminator)
	sa := buildSuffixArray(tPrime, terminator)
	l := forwardBWT(tPrime, sa)

	for name, o := range buildAllOracles(t, l, 2) {
		if got := o.rank('z', len(l)); got != 0 {
			t.Fatalf("oracle=%s rank('z', m) = %d, want 0", name, got)
		}
		if got := o.lfWithSymbol('z', 0); got != 0 {
			t.Fatalf("oracle=%s lfWithSymbol('z', 0) = %d, want 0", name, got)
		}
	}
}
