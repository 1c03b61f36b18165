package fmindex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// debugWriter is where printLFDebug writes. Exported only to tests, which
// swap it out to capture output instead of polluting stderr.
var debugWriter io.Writer = os.Stderr

// printLFDebug dumps the L and F columns alongside an ASCII marker of the
// active [top, bot) backward-search range. This is the same visualization
// search/bwt/bwt.go's printLFDebug prints while diagnosing LF-mapping
// regressions, generalized from that package's run-length-compressed last
// column to the flat L this package keeps directly: F is never
// materialized elsewhere in the index, so this is the one place it gets
// reconstructed, purely for the debug dump.
func (idx *Index) printLFDebug(top, bot, iteration int) {
	fmt.Fprintln(debugWriter, "fmindex debug begin iteration:", iteration)
	fmt.Fprintln(debugWriter, string(idx.l))
	fmt.Fprintln(debugWriter, string(idx.firstColumnBytes()))
	fmt.Fprintln(debugWriter, rangeMarker(top, bot, idx.m))
}

// firstColumnBytes reconstructs F by sorting a copy of L: F and L are both
// permutations of T', and F is by definition L's sorted order.
func (idx *Index) firstColumnBytes() []byte {
	first := make([]byte, len(idx.l))
	copy(first, idx.l)
	sort.Slice(first, func(i, j int) bool {
		return charLess(idx.terminator, first[i], first[j])
	})
	return first
}

// charLess orders a, b with the terminator sorting below every other byte,
// matching charOrder's ranking in suffixarray.go.
func charLess(terminator, a, b byte) bool {
	if a == b {
		return false
	}
	if a == terminator {
		return true
	}
	if b == terminator {
		return false
	}
	return a < b
}

// rangeMarker renders the ASCII "^" band search/bwt/bwt.go's printLFDebug
// uses to visualize the active [top, bot) interval against the full column
// width m, with a trailing "X" marking the position just past bot.
func rangeMarker(top, bot, m int) string {
	var b strings.Builder
	b.Grow(m + 1)
	for i := 0; i < top; i++ {
		b.WriteByte('_')
	}
	for i := top; i < bot; i++ {
		b.WriteByte('^')
	}
	b.WriteByte('X')
	return b.String()
}
