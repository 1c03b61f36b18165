package fmindex

// rankOracle answers rank(c, i) = number of occurrences of c in L[0:i),
// and the two LF-mapping derivatives built on top of it. Three variants
// implement this interface (oracle_naive.go, oracle_full.go,
// oracle_checkpoint.go); spec.md §4.4 requires all three to be available
// and to agree on every query (P5, the "oracle equivalence" invariant).
type rankOracle interface {
	// rank returns the number of occurrences of c in l[0:i).
	rank(c byte, i int) int
	// lf computes LF(i) = C[L[i]] + rank(L[i], i).
	lf(i int) int
	// lfWithSymbol computes C[c] + rank(c, i), used by backward search to
	// advance both ends of the [top, bot) interval for a query symbol c
	// that need not equal L[i].
	lfWithSymbol(c byte, i int) int
}

// oracleVariant identifies which rankOracle implementation backs an
// Index, both for the Build-time option and the on-disk format (spec.md
// §6 byte 5).
type oracleVariant byte

const (
	// OracleNaive is (a): no auxiliary structure, O(m) rank by linear scan.
	OracleNaive oracleVariant = 0
	// OracleFull is (b): a fully materialized LF/FMc table, O(1) rank.
	OracleFull oracleVariant = 1
	// OracleCheckpointed is (c): cumulative counts every s positions, O(s) rank.
	OracleCheckpointed oracleVariant = 2
)

func (v oracleVariant) String() string {
	switch v {
	case OracleNaive:
		return "naive"
	case OracleFull:
		return "full"
	case OracleCheckpointed:
		return "checkpointed"
	default:
		return "unknown"
	}
}

// buildRankOracle constructs the oracle named by variant over l, using
// table for C and the given checkpoint step (ignored by variants other
// than OracleCheckpointed).
func buildRankOracle(variant oracleVariant, l []byte, table firstOccurrenceTable, step int) (rankOracle, error) {
	switch variant {
	case OracleNaive:
		return newNaiveOracle(l, table), nil
	case OracleFull:
		return newFullOracle(l, table), nil
	case OracleCheckpointed:
		return newCheckpointedOracle(l, table, step)
	default:
		return nil, errInternalInvariantViolationf("unknown rank oracle variant %d", variant)
	}
}
