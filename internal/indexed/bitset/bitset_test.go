package bitset_test

import (
	"testing"

	"github.com/cib-project/cib/internal/indexed/bitset"
	"github.com/stretchr/testify/assert"
)

func TestSetAndTest(t *testing.T) {
	s := bitset.New(70)
	s.SetBit(0)
	s.SetBit(63)
	s.SetBit(64)
	s.SetBit(69)

	assert.True(t, s.Test(0))
	assert.True(t, s.Test(63))
	assert.True(t, s.Test(64))
	assert.True(t, s.Test(69))
	assert.False(t, s.Test(1))
	assert.Equal(t, []int{0, 63, 64, 69}, s.Ones())
	assert.Equal(t, 4, s.Popcount())
}

func TestAllOnesRespectsCapacity(t *testing.T) {
	s := bitset.AllOnes(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Ones())
	assert.Equal(t, 5, s.Popcount())
}

func TestAndOr(t *testing.T) {
	a := bitset.New(4)
	a.SetBit(0)
	a.SetBit(1)
	b := bitset.New(4)
	b.SetBit(1)
	b.SetBit(2)

	assert.Equal(t, []int{1}, a.And(b).Ones())
	assert.Equal(t, []int{0, 1, 2}, a.Or(b).Ones())
}
