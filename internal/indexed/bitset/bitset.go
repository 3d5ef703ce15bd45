// Package bitset implements the fixed-capacity callback membership sets the
// indexed message handler builder computes per field value: a plain
// []uint64 word vector standing in for the original's stdx::bitset, sized
// once at build time and never resized on the dispatch path.
package bitset

import "math/bits"

const wordBits = 64

// Set is a bitset over callback indices [0, n). The zero value is an empty,
// zero-capacity set; use New to allocate one with room for n bits.
type Set struct {
	words []uint64
	n     int
}

// New returns an empty Set with capacity for n callback indices.
func New(n int) Set {
	return Set{words: make([]uint64, (n+wordBits-1)/wordBits), n: n}
}

// AllOnes returns a Set with every bit in [0, n) set, the starting point for
// dispatch's AND-narrowing pass.
func AllOnes(n int) Set {
	s := New(n)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	if n%wordBits != 0 && len(s.words) > 0 {
		s.words[len(s.words)-1] &= (uint64(1) << uint(n%wordBits)) - 1
	}
	return s
}

// Len returns the bitset's declared capacity.
func (s Set) Len() int { return s.n }

// SetBit sets bit i.
func (s Set) SetBit(i int) { s.words[i/wordBits] |= uint64(1) << uint(i%wordBits) }

// Test reports whether bit i is set.
func (s Set) Test(i int) bool { return s.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0 }

// Or returns the bitwise union of s and other; both must share capacity.
func (s Set) Or(other Set) Set {
	out := New(s.n)
	for i := range out.words {
		out.words[i] = s.words[i] | other.words[i]
	}
	return out
}

// And returns the bitwise intersection of s and other; both must share
// capacity.
func (s Set) And(other Set) Set {
	out := New(s.n)
	for i := range out.words {
		out.words[i] = s.words[i] & other.words[i]
	}
	return out
}

// Popcount returns the number of set bits.
func (s Set) Popcount() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Ones returns the set bits in ascending order, the iteration order dispatch
// must use to preserve callback declaration order (spec.md §4.3
// "Guarantees").
func (s Set) Ones() []int {
	out := make([]int, 0, s.Popcount())
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+b)
			w &= w - 1
		}
	}
	return out
}
