package rle_test

import (
	"testing"

	"github.com/cib-project/cib/internal/indexed/bitset"
	"github.com/cib-project/cib/internal/indexed/rle"
	"github.com/stretchr/testify/assert"
)

func entry(n int, bits ...int) bitset.Set {
	s := bitset.New(n)
	for _, b := range bits {
		s.SetBit(b)
	}
	return s
}

func TestMergesIdenticalAdjacentRuns(t *testing.T) {
	same := entry(2, 0)
	idx := rle.NewIndex(map[int64]bitset.Set{
		10: same,
		11: same,
		12: same,
		20: entry(2, 1),
	})

	assert.Equal(t, 2, rle.RunCount(idx))

	got, ok := idx.Get(11)
	assert.True(t, ok)
	assert.Equal(t, []int{0}, got.Ones())

	got, ok = idx.Get(20)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, got.Ones())

	_, ok = idx.Get(15)
	assert.False(t, ok)
}

func TestDistinctBitsetsStayInSeparateRuns(t *testing.T) {
	idx := rle.NewIndex(map[int64]bitset.Set{
		1: entry(2, 0),
		2: entry(2, 1),
	})
	assert.Equal(t, 2, rle.RunCount(idx))
}
