// Package rle implements the run-length-encoded variant of the indexed
// lookup structure: supplemental to the distilled specification, grounded
// on original_source/include/msg/rle_indexed_builder.hpp, which compresses
// a field's value->bitset entries when long runs of contiguous keys share
// the same candidate bitset (e.g. "any opcode above N" gates every
// callback identically across that whole tail of the domain).
package rle

import (
	"sort"

	"github.com/cib-project/cib/internal/indexed/bitset"
	"github.com/cib-project/cib/internal/indexed/lookup"
)

type run struct {
	start, end int64
	bits       bitset.Set
}

type index struct {
	runs []run
}

// equal reports whether a and b have the same set bits, assuming equal
// capacity.
func equal(a, b bitset.Set) bool {
	return len(a.Ones()) == len(b.Ones()) && sameOnes(a.Ones(), b.Ones())
}

func sameOnes(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NewIndex builds an rle-compressed lookup.Index from a field's entries,
// merging adjacent keys (differing by exactly 1) that carry identical
// bitsets into a single run. Lookup is a binary search over runs, O(log(r))
// for r runs rather than O(1) per key, trading lookup speed for a much
// smaller table when entries are long clumpy identical-value runs.
func NewIndex(entries map[int64]bitset.Set) lookup.Index {
	keys := make([]int64, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var runs []run
	for _, k := range keys {
		v := entries[k]
		if n := len(runs); n > 0 && runs[n-1].end+1 == k && equal(runs[n-1].bits, v) {
			runs[n-1].end = k
			continue
		}
		runs = append(runs, run{start: k, end: k, bits: v})
	}
	return &index{runs: runs}
}

func (idx *index) Get(v int64) (bitset.Set, bool) {
	lo, hi := 0, len(idx.runs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := idx.runs[mid]
		switch {
		case v < r.start:
			hi = mid - 1
		case v > r.end:
			lo = mid + 1
		default:
			return r.bits, true
		}
	}
	var zero bitset.Set
	return zero, false
}

// RunCount returns the number of merged runs backing idx, exposed for
// diagnostics and tests; idx must have come from NewIndex.
func RunCount(idx lookup.Index) int {
	r, ok := idx.(*index)
	if !ok {
		return -1
	}
	return len(r.runs)
}
