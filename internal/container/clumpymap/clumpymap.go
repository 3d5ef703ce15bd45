// Package clumpymap implements an ordered map tuned for integral keys whose
// distribution is "clumpy": long runs of keys differing by 1, separated by
// arbitrary gaps. It backs internal/indexed/lookup's sparse-domain path,
// where a field's observed values in the matcher corpus tend to arrive in
// just such runs (adjacent enum values, small integer ranges) rather than
// densely or uniformly at random.
//
// Lookup is a binary search over clumps (O(log(c)) for c clumps) followed
// by a direct array index within the winning clump (O(1)), which beats a
// general ordered or hash map on this access pattern while keeping
// construction and memory overhead low.
package clumpymap

import "sort"

// clump is a contiguous run of keys [base, base+len(values)-1].
type clump[V any] struct {
	base   int64
	values []V
}

func (c clump[V]) end() int64 { return c.base + int64(len(c.values)) - 1 }

// Map is an immutable clumpy integral map built by Build.
type Map[V any] struct {
	clumps []clump[V]
}

// Build groups pairs into clumps and returns the resulting Map. Pairs may
// be supplied in any order and with duplicate keys (the last write for a
// key wins, matching a plain map literal's semantics).
func Build[V any](pairs map[int64]V) *Map[V] {
	keys := make([]int64, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	m := &Map[V]{}
	for _, k := range keys {
		if n := len(m.clumps); n > 0 && m.clumps[n-1].end()+1 == k {
			m.clumps[n-1].values = append(m.clumps[n-1].values, pairs[k])
			continue
		}
		m.clumps = append(m.clumps, clump[V]{base: k, values: []V{pairs[k]}})
	}
	return m
}

// Get returns the value stored at key, if any.
func (m *Map[V]) Get(key int64) (V, bool) {
	lo, hi := 0, len(m.clumps)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		c := m.clumps[mid]
		switch {
		case key < c.base:
			hi = mid - 1
		case key > c.end():
			lo = mid + 1
		default:
			return c.values[key-c.base], true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of distinct keys stored.
func (m *Map[V]) Len() int {
	n := 0
	for _, c := range m.clumps {
		n += len(c.values)
	}
	return n
}

// Clumps returns the number of contiguous runs the keys were split into,
// exposed for diagnostics and tests rather than for lookup itself.
func (m *Map[V]) Clumps() int { return len(m.clumps) }
