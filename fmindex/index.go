package fmindex

import "sort"

// DefaultTerminator is the sentinel byte appended to the input text and
// rejected from appearing in it (spec.md §9's option (b): "detect and
// reject inputs containing" the terminator, chosen over a wider alphabet
// or an escaping scheme).
const DefaultTerminator byte = 0x00

// DefaultSampleRate is the spacing, in original-text positions, between
// suffix-array entries the Index keeps around for Locate. A row i is
// sampled when SA[i] is a multiple of this rate.
const DefaultSampleRate = 32

// Index is an immutable FM-index built over one text. It owns L, the
// first-occurrence table, a pluggable rank oracle, and a pre-filled
// sparse suffix array used only by Locate.
type Index struct {
	l             []byte
	table         firstOccurrenceTable
	oracle        rankOracle
	oracleVariant oracleVariant
	checkpointStep int
	terminator    byte
	m             int
	sampleRate    int
	sampledSA     map[int]int
	debug         bool
}

// buildOptions holds the functional-option state for Build.
type buildOptions struct {
	variant     oracleVariant
	step        int
	sampleRate  int
	terminator  byte
	debug       bool
}

// Option configures Build. Mirrors the teacher's variadic-flag
// constructors (e.g. seqhash.HashV1's behavior flags) rather than a
// config struct, since there are only a handful of independent knobs.
type Option func(*buildOptions)

// WithOracleVariant selects which rankOracle implementation backs the
// built Index. Defaults to OracleCheckpointed.
func WithOracleVariant(v oracleVariant) Option {
	return func(o *buildOptions) { o.variant = v }
}

// WithCheckpointStep sets the checkpoint spacing s for OracleCheckpointed
// (spec.md §4.4(c), default 50). Ignored for other variants.
func WithCheckpointStep(step int) Option {
	return func(o *buildOptions) { o.step = step }
}

// WithSampleRate sets the suffix-array sampling density for Locate.
func WithSampleRate(rate int) Option {
	return func(o *buildOptions) { o.sampleRate = rate }
}

// WithTerminator overrides the sentinel byte appended to the text and
// rejected from appearing within it. Defaults to DefaultTerminator.
func WithTerminator(b byte) Option {
	return func(o *buildOptions) { o.terminator = b }
}

// WithDebug turns on printLFDebug's per-iteration dump of the backward
// search's [top, bot) interval, the same LF-mapping visualization
// search/bwt/bwt.go prints when its own debug flag is set. Off by default;
// meant for diagnosing a misbehaving oracle or suffix sort, not routine use.
func WithDebug(enabled bool) Option {
	return func(o *buildOptions) { o.debug = enabled }
}

// Build constructs an Index over text. text must not contain the
// configured terminator byte; Build returns ErrInputContainsTerminator
// if it does.
func Build(text []byte, opts ...Option) (*Index, error) {
	cfg := buildOptions{
		variant:    OracleCheckpointed,
		step:       DefaultCheckpointStep,
		sampleRate: DefaultSampleRate,
		terminator: DefaultTerminator,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleRate < 1 {
		cfg.sampleRate = 1
	}

	for _, b := range text {
		if b == cfg.terminator {
			return nil, ErrInputContainsTerminator
		}
	}

	tPrime := make([]byte, len(text)+1)
	copy(tPrime, text)
	tPrime[len(text)] = cfg.terminator

	sa := buildSuffixArray(tPrime, cfg.terminator)
	l := forwardBWT(tPrime, sa)
	table := newFirstOccurrenceTable(l)

	oracle, err := buildRankOracle(cfg.variant, l, table, cfg.step)
	if err != nil {
		return nil, err
	}

	sampledSA := make(map[int]int)
	for row, pos := range sa {
		if pos%cfg.sampleRate == 0 {
			sampledSA[row] = pos
		}
	}
	// sa is no longer needed once L and the samples are derived from it
	// (spec.md §5's memory discipline: "free SA once L and the sampled
	// offsets ... are produced").
	sa = nil

	return &Index{
		l:              l,
		table:          table,
		oracle:         oracle,
		oracleVariant:  cfg.variant,
		checkpointStep: cfg.step,
		terminator:     cfg.terminator,
		m:              len(l),
		sampleRate:     cfg.sampleRate,
		sampledSA:      sampledSA,
		debug:          cfg.debug,
	}, nil
}

// Len returns the length of the original text (excluding the terminator).
func (idx *Index) Len() int {
	return idx.m - 1
}

// SetDebug turns printLFDebug's per-iteration dump on or off for an
// already-built or loaded Index. Debug state is not persisted by Save, so
// a caller that wants it after Load must opt back in explicitly here.
func (idx *Index) SetDebug(enabled bool) {
	idx.debug = enabled
}

// backwardSearchRange narrows [top, bot) one pattern byte at a time, per
// spec.md §4.5. An empty pattern returns the empty-pattern policy's
// interval directly (spec.md §4.5: reference choice is Count==0).
func (idx *Index) backwardSearchRange(pattern []byte) (top, bot int) {
	if len(pattern) == 0 {
		return 0, 0
	}

	top, bot = 0, idx.m
	for iteration, k := 0, len(pattern)-1; k >= 0; iteration, k = iteration+1, k-1 {
		if idx.debug {
			idx.printLFDebug(top, bot, iteration)
		}
		c := pattern[k]
		if !idx.table.isPresent(c) {
			return 0, 0
		}
		top = idx.oracle.lfWithSymbol(c, top)
		bot = idx.oracle.lfWithSymbol(c, bot)
		if top >= bot {
			return 0, 0
		}
	}
	return top, bot
}

// Count returns the number of occurrences of pattern in the original
// text.
func (idx *Index) Count(pattern []byte) (count int, err error) {
	defer recoverInvariantPanic("Count", &err)
	top, bot := idx.backwardSearchRange(pattern)
	return bot - top, nil
}

// Locate returns the sorted starting offsets of every occurrence of
// pattern in the original text.
func (idx *Index) Locate(pattern []byte) (offsets []int, err error) {
	defer recoverInvariantPanic("Locate", &err)
	top, bot := idx.backwardSearchRange(pattern)
	if top >= bot {
		return nil, nil
	}

	offsets = make([]int, 0, bot-top)
	for row := top; row < bot; row++ {
		offsets = append(offsets, idx.resolveOffset(row))
	}
	sort.Ints(offsets)
	return offsets, nil
}

// resolveOffset walks LF from row until a pre-sampled row is reached,
// counting the steps taken; SA[row] = SA[sampled row] + steps, since each
// LF step moves to the row one text position earlier. The terminator row
// is always sampled (SA there is 0, a multiple of every sample rate), so
// this loop always terminates within idx.sampleRate-1 steps.
func (idx *Index) resolveOffset(row int) int {
	steps := 0
	cur := row
	for {
		if pos, ok := idx.sampledSA[cur]; ok {
			return pos + steps
		}
		cur = idx.oracle.lf(cur)
		if cur < 0 || cur >= idx.m {
			panic(errInternalInvariantViolationf("resolveOffset: LF walk left [0, %d) at step %d", idx.m, steps))
		}
		steps++
	}
}
