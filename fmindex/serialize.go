package fmindex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"lukechampine.com/blake3"
)

// magic and formatVersion identify the on-disk container per spec.md §6.
var magic = [4]byte{'F', 'M', 'I', '1'}

const formatVersion byte = 1

// headerSize is the fixed-width prefix before the C table: magic(4) +
// version(1) + variant(1) + terminator(1) + reserved(1) + m(8) + step(4).
const headerSize = 20

// cTableSize is the C table width fixed by spec.md §6: 256 entries of a
// 4-byte unsigned integer each.
const cTableSize = 256 * 4

// digestSize is the width of the trailing content digest this module adds
// beyond spec.md §6's fixed fields (see the doc comment on Save).
const digestSize = 32

// sampleRateSize is the width of the trailing suffix-array sample rate
// field this module adds beyond spec.md §6's fixed fields (see the doc
// comment on Save). Spec.md §3 lists "the sampling step" among the fields
// a persisted index owns, but §6's fixed layout has no slot for it; rather
// than have Load silently fall back to DefaultSampleRate for every index
// (changing Locate's memory/time trade-off out from under a caller who
// built with a different rate), this module persists the real value here.
const sampleRateSize = 4

// Save writes idx to w in the binary format fixed by spec.md §6: magic,
// version, oracle variant, terminator, m, checkpoint step, the C table,
// L, then an oracle-specific payload. Two trailing fields are appended
// beyond spec.md's fixed layout: the suffix-array sample rate (see
// sampleRateSize) and a BLAKE3-256 digest of everything written so far.
// Neither contradicts a field spec.md fixes; the digest lets Load
// distinguish "truncated/corrupted in transit" from "not an FM-index file
// at all".
func Save(idx *Index, w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(headerSize + cTableSize + idx.m)

	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(idx.oracleVariant))
	buf.WriteByte(idx.terminator)
	buf.WriteByte(0) // reserved

	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], uint64(idx.m))
	buf.Write(tmp8[:])

	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], uint32(idx.checkpointStep))
	buf.Write(tmp4[:])

	for c := 0; c < 256; c++ {
		binary.LittleEndian.PutUint32(tmp4[:], idx.table.offsets[c])
		buf.Write(tmp4[:])
	}

	buf.Write(idx.l)

	if err := writeOraclePayload(&buf, idx); err != nil {
		return fmt.Errorf("%w: %s", ErrIoFailure, err)
	}

	var sampleRateBytes [sampleRateSize]byte
	binary.LittleEndian.PutUint32(sampleRateBytes[:], uint32(idx.sampleRate))
	buf.Write(sampleRateBytes[:])

	digest := blake3.Sum256(buf.Bytes())
	buf.Write(digest[:])

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s", ErrIoFailure, err)
	}
	return nil
}

// writeOraclePayload appends the variant-specific trailing section. The
// naive oracle carries no auxiliary state. The checkpointed oracle's
// per-checkpoint counts are expanded from the dense alphabet-indexed form
// kept in memory to a full 256-wide row, per spec.md §6's literal "256×4
// bytes" record width. The full oracle's FMc table keeps its dense
// sigma-wide rows (spec.md leaves this payload's width "variable");
// lfTbl is not separately persisted since it is recoverable as
// fmc[i][alphaIndexOf(L[i])].
func writeOraclePayload(buf *bytes.Buffer, idx *Index) error {
	var tmp4 [4]byte
	switch o := idx.oracle.(type) {
	case *naiveOracle:
		return nil
	case *checkpointedOracle:
		numCheckpoints := len(o.checkpoints) / o.sigma
		for k := 0; k < numCheckpoints; k++ {
			var row [256]uint32
			for cIdx := 0; cIdx < o.sigma; cIdx++ {
				row[o.alpha.byteAt(cIdx)] = uint32(o.checkpoints[k*o.sigma+cIdx])
			}
			for c := 0; c < 256; c++ {
				binary.LittleEndian.PutUint32(tmp4[:], row[c])
				buf.Write(tmp4[:])
			}
		}
		return nil
	case *fullOracle:
		for i := 0; i < len(o.fmc); i++ {
			binary.LittleEndian.PutUint32(tmp4[:], uint32(o.fmc[i]))
			buf.Write(tmp4[:])
		}
		return nil
	default:
		return fmt.Errorf("unknown oracle implementation %T", o)
	}
}

// Load reads an Index previously written by Save. It verifies the magic,
// version, and trailing digest before trusting any other field, per
// spec.md §7 ("load fails magic, version, length, or bounds checks").
func Load(r io.Reader) (*Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoFailure, err)
	}

	if len(raw) < headerSize+cTableSize+digestSize {
		return nil, fmt.Errorf("%w: file too short", ErrMalformedIndex)
	}

	body := raw[:len(raw)-digestSize]
	wantDigest := raw[len(raw)-digestSize:]
	gotDigest := blake3.Sum256(body)
	if !bytes.Equal(gotDigest[:], wantDigest) {
		return nil, fmt.Errorf("%w: digest mismatch", ErrMalformedIndex)
	}

	if !bytes.Equal(body[0:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedIndex)
	}
	if body[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedIndex, body[4])
	}

	variant := oracleVariant(body[5])
	terminator := body[6]
	m := int(binary.LittleEndian.Uint64(body[8:16]))
	step := int(binary.LittleEndian.Uint32(body[16:20]))

	if m < 1 {
		return nil, fmt.Errorf("%w: m must be >= 1, got %d", ErrMalformedIndex, m)
	}

	// The sample rate is the last fixed-width field before the digest
	// (stripped above), appended after every variant's oracle payload;
	// peel it off the tail of body so the rest of the parse below sees
	// exactly the same layout it would have without this addition.
	if len(body) < headerSize+cTableSize+m+sampleRateSize {
		return nil, fmt.Errorf("%w: file too short for sample rate", ErrMalformedIndex)
	}
	sampleRate := int(binary.LittleEndian.Uint32(body[len(body)-sampleRateSize:]))
	body = body[:len(body)-sampleRateSize]
	if sampleRate < 1 {
		return nil, fmt.Errorf("%w: sample rate must be >= 1, got %d", ErrMalformedIndex, sampleRate)
	}

	offset := headerSize
	var offsets [256]uint32
	for c := 0; c < 256; c++ {
		offsets[c] = binary.LittleEndian.Uint32(body[offset : offset+4])
		offset += 4
	}

	if len(body) < offset+m {
		return nil, fmt.Errorf("%w: L truncated", ErrMalformedIndex)
	}
	l := make([]byte, m)
	copy(l, body[offset:offset+m])
	offset += m

	// Recompute C from the loaded L itself and check it against the
	// persisted table, rather than trusting the persisted bytes: this is
	// the check that actually catches a file whose C table and L have
	// gone out of sync with each other.
	table := newFirstOccurrenceTable(l)
	if table.offsets != offsets {
		return nil, fmt.Errorf("%w: persisted C table does not match L", ErrMalformedIndex)
	}

	oracle, err := readOraclePayload(variant, body[offset:], l, table, step)
	if err != nil {
		return nil, err
	}

	sampledSA := make(map[int]int)
	// Sampled offsets themselves are not persisted (spec.md §6); they are
	// cheap to rebuild from L, the loaded oracle, and the persisted sample
	// rate, and are not needed until the first Locate call.
	prefillSampledSA(l, oracle, sampleRate, sampledSA)

	return &Index{
		l:              l,
		table:          table,
		oracle:         oracle,
		oracleVariant:  variant,
		checkpointStep: step,
		terminator:     terminator,
		m:              m,
		sampleRate:     sampleRate,
		sampledSA:      sampledSA,
	}, nil
}

func readOraclePayload(variant oracleVariant, payload []byte, l []byte, table firstOccurrenceTable, step int) (rankOracle, error) {
	switch variant {
	case OracleNaive:
		return newNaiveOracle(l, table), nil
	case OracleCheckpointed:
		return readCheckpointedOracle(payload, l, table, step)
	case OracleFull:
		return readFullOracle(payload, l, table)
	default:
		return nil, fmt.Errorf("%w: unknown oracle variant %d", ErrMalformedIndex, variant)
	}
}

func readCheckpointedOracle(payload []byte, l []byte, table firstOccurrenceTable, step int) (*checkpointedOracle, error) {
	if step < 1 {
		return nil, fmt.Errorf("%w: checkpoint step must be >= 1", ErrMalformedIndex)
	}
	alpha := table.alphabet()
	sigma := alpha.sigma()
	numCheckpoints := len(l)/step + 1
	recordSize := 256 * 4
	if len(payload) < numCheckpoints*recordSize {
		return nil, fmt.Errorf("%w: checkpoint payload truncated", ErrMalformedIndex)
	}

	checkpoints := make([]int32, numCheckpoints*sigma)
	for k := 0; k < numCheckpoints; k++ {
		rowStart := k * recordSize
		for cIdx := 0; cIdx < sigma; cIdx++ {
			c := alpha.byteAt(cIdx)
			off := rowStart + int(c)*4
			checkpoints[k*sigma+cIdx] = int32(binary.LittleEndian.Uint32(payload[off : off+4]))
		}
	}

	return &checkpointedOracle{
		l:           l,
		table:       table,
		alpha:       alpha,
		step:        step,
		sigma:       sigma,
		checkpoints: checkpoints,
	}, nil
}

func readFullOracle(payload []byte, l []byte, table firstOccurrenceTable) (*fullOracle, error) {
	alpha := table.alphabet()
	sigma := alpha.sigma()
	m := len(l)
	need := (m + 1) * sigma
	if len(payload) < need*4 {
		return nil, fmt.Errorf("%w: full oracle payload truncated", ErrMalformedIndex)
	}

	fmc := make([]int32, need)
	for i := 0; i < need; i++ {
		off := i * 4
		fmc[i] = int32(binary.LittleEndian.Uint32(payload[off : off+4]))
	}

	lfTbl := make([]int32, m+1)
	for i := 0; i < m; i++ {
		cIdx, ok := alpha.indexOf(l[i])
		if !ok {
			return nil, fmt.Errorf("%w: L contains a byte absent from the alphabet", ErrMalformedIndex)
		}
		lfTbl[i] = fmc[i*sigma+cIdx]
	}

	return &fullOracle{
		table: table,
		alpha: alpha,
		lfTbl: lfTbl,
		fmc:   fmc,
		sigma: sigma,
	}, nil
}

// prefillSampledSA recomputes the sparse row->SA[row] map by walking LF
// from row 0 -- which is always the row whose suffix is the lone
// terminator, since F is sorted and the terminator sorts smallest, so
// SA[0] == m-1 -- around the full LF cycle (invariant I3: exactly m
// iterations return to the start). SA itself is never persisted
// (spec.md: "sampled_offset is not persisted"), so this is how Load
// rebuilds it instead.
func prefillSampledSA(l []byte, oracle rankOracle, sampleRate int, sampledSA map[int]int) {
	m := len(l)
	row := 0
	pos := m - 1
	for i := 0; i < m; i++ {
		if pos%sampleRate == 0 {
			sampledSA[row] = pos
		}
		row = oracle.lf(row)
		pos--
		if pos < 0 {
			pos = m - 1
		}
	}
}
