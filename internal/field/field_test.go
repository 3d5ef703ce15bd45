package field_test

import (
	"testing"

	"github.com/cib-project/cib/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInsertRoundTrip(t *testing.T) {
	// An 18-bit field split across three storage words (2 + 8 + 8 bits),
	// concatenated MSB-first, round-tripping the value 0x3AAAB used in
	// spec.md §8 scenario 5.
	f := field.New("wide",
		field.Slice{WordIndex: 0, Msb: 17, Lsb: 16},
		field.Slice{WordIndex: 1, Msb: 7, Lsb: 0},
		field.Slice{WordIndex: 2, Msb: 9, Lsb: 2},
	)
	require.EqualValues(t, 18, f.Bits())

	words := make([]uint32, 3)
	f.Insert(words, 0x3AAAB)
	got := f.Extract(words)
	assert.EqualValues(t, 0x3AAAB, got)
}

func TestExtractInsertEveryValueInDomain(t *testing.T) {
	f := field.New("small", field.Slice{WordIndex: 0, Msb: 3, Lsb: 0})
	words := make([]uint32, 1)
	for v := uint64(0); v < 16; v++ {
		f.Insert(words, v)
		assert.EqualValues(t, v, f.Extract(words))
	}
}

func TestInsertDoesNotDisturbOtherBits(t *testing.T) {
	lo := field.New("lo", field.Slice{WordIndex: 0, Msb: 3, Lsb: 0})
	hi := field.New("hi", field.Slice{WordIndex: 0, Msb: 7, Lsb: 4})
	words := make([]uint32, 1)
	lo.Insert(words, 0xF)
	hi.Insert(words, 0x3)
	assert.EqualValues(t, 0xF, lo.Extract(words))
	assert.EqualValues(t, 0x3, hi.Extract(words))
	assert.EqualValues(t, 0x3F, words[0])
}

func TestSpecGetSetAndFieldValue(t *testing.T) {
	spec := field.NewSpec(
		field.New("id", field.Slice{WordIndex: 0, Msb: 7, Lsb: 0}),
		field.New("opcode", field.Slice{WordIndex: 0, Msb: 15, Lsb: 8}),
	)

	msg := spec.NewOwning()
	require.True(t, msg.Set("id", 0x80))
	require.True(t, msg.Set("opcode", 1))

	v, ok := msg.Get("id")
	require.True(t, ok)
	assert.EqualValues(t, 0x80, v)

	ev, ok := msg.FieldValue("opcode")
	require.True(t, ok)
	assert.EqualValues(t, 1, ev)

	_, ok = msg.Get("missing")
	assert.False(t, ok)
}

func TestViewSharesBackingStorage(t *testing.T) {
	spec := field.NewSpec(field.New("id", field.Slice{WordIndex: 0, Msb: 7, Lsb: 0}))
	words := make([]uint32, 1)
	view := spec.NewView(words)
	view.Set("id", 0x42)
	assert.EqualValues(t, 0x42, words[0])
}
