/*
Package fmindex implements a full-text substring search engine over an
arbitrary byte sequence, using the Burrows-Wheeler Transform and an
FM-index built on top of it.

Build a text once into an immutable Index, then answer two kinds of
query against it: Count, the number of occurrences of a pattern, and
Locate, the sorted starting offsets of every occurrence. Both are
answered by backward search over the BWT's last column (L) without ever
reconstructing the original text.

# Rank oracles

The core of an Index is a rankOracle: a structure answering, for a byte c
and a position i, how many times c occurs in L[0:i). Three interchangeable
implementations trade space for time differently -- a naive linear scan,
a fully materialized LF table, and a checkpointed table that samples
cumulative counts every few positions and scans the remainder. Select one
with WithOracleVariant at Build time; all three answer every query
identically.

This package generalizes the same LF-mapping idea the teacher's
search/bwt package applies to DNA/protein sequences to any byte alphabet,
and swaps its O(n^2 log n) rotation sort for a prefix-doubling suffix
sort (O(m log^2 m) comparisons in the worst case) that never materializes
a rotation as its own string.
*/
package fmindex
