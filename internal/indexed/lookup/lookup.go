// Package lookup provides the per-field value-to-bitset lookup structures
// the indexed message handler builder queries at dispatch time. spec.md
// treats the original's pseudo_pext_lookup as a pluggable black-box
// key->value map with a known build-time factory; this package supplies
// two concrete factories satisfying that contract: a dense map-backed one
// (NewDense, the default) and a sparse clumpy-integer-map-backed one
// (NewSparse) for fields whose observed values cluster into runs.
package lookup

import (
	"github.com/cib-project/cib/internal/container/clumpymap"
	"github.com/cib-project/cib/internal/indexed/bitset"
)

// Index maps a field value to its candidate bitset. Keys absent from the
// index yield (zero value, false) — dispatch then applies the field's
// default bitset alone (spec.md §4.3 "Keys absent from M_j yield the zero
// bitset").
type Index interface {
	Get(v int64) (bitset.Set, bool)
}

// Factory builds an Index from a field's constrained value->bitset entries.
type Factory func(entries map[int64]bitset.Set) Index

type denseIndex struct {
	entries map[int64]bitset.Set
}

// NewDense builds an Index backed by a plain Go map, the default factory:
// O(1) expected lookup, the natural choice when a field's constrained
// values don't have exploitable structure.
func NewDense(entries map[int64]bitset.Set) Index {
	cp := make(map[int64]bitset.Set, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &denseIndex{entries: cp}
}

func (d *denseIndex) Get(v int64) (bitset.Set, bool) {
	b, ok := d.entries[v]
	return b, ok
}

type sparseIndex struct {
	m *clumpymap.Map[bitset.Set]
}

// NewSparse builds an Index backed by clumpymap, worthwhile when a field's
// constrained values are known to arrive in long contiguous runs (adjacent
// enum members, small integer ranges) rather than scattered uniformly.
func NewSparse(entries map[int64]bitset.Set) Index {
	return &sparseIndex{m: clumpymap.Build(entries)}
}

func (s *sparseIndex) Get(v int64) (bitset.Set, bool) {
	return s.m.Get(v)
}
