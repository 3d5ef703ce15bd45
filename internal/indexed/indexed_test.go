package indexed_test

import (
	"testing"

	"github.com/cib-project/cib/internal/indexed"
	"github.com/cib-project/cib/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMsg map[string]int64

func (m fakeMsg) FieldValue(name string) (matcher.Value, bool) { v, ok := m[name]; return v, ok }

// TestDispatchScenario exercises spec.md §8 scenario 2.
func TestDispatchScenario(t *testing.T) {
	var fired []string
	record := func(name string) indexed.Action {
		return func(matcher.Extractor, ...any) { fired = append(fired, name) }
	}

	b := indexed.NewBuilder("id", "opcode")
	b.Add(indexed.Callback{Name: "c1", Matcher: matcher.EqualTo("id", 0x80), Action: record("c1")})
	b.Add(indexed.Callback{
		Name:    "c2",
		Matcher: matcher.AndOf(matcher.EqualTo("id", 0x80), matcher.EqualTo("opcode", 1)),
		Action:  record("c2"),
	})
	b.Add(indexed.Callback{Name: "c3", Matcher: matcher.EqualTo("opcode", 2), Action: record("c3")})

	h, warnings, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	fired = nil
	matched := h.Dispatch(fakeMsg{"id": 0x80, "opcode": 1})
	assert.True(t, matched)
	assert.Equal(t, []string{"c1", "c2"}, fired)

	fired = nil
	matched = h.Dispatch(fakeMsg{"id": 0x80, "opcode": 2})
	assert.True(t, matched)
	assert.Equal(t, []string{"c1", "c3"}, fired)

	fired = nil
	matched = h.Dispatch(fakeMsg{"id": 0x81, "opcode": 2})
	assert.True(t, matched)
	assert.Equal(t, []string{"c3"}, fired)
}

func TestUnmatchedMessageReturnsFalse(t *testing.T) {
	b := indexed.NewBuilder("id")
	b.Add(indexed.Callback{Name: "c1", Matcher: matcher.EqualTo("id", 1), Action: func(matcher.Extractor, ...any) {}})

	h, _, err := b.Build()
	require.NoError(t, err)

	assert.False(t, h.Dispatch(fakeMsg{"id": 99}))
}

func TestResidualCheckCatchesNonIndexedConstraint(t *testing.T) {
	var fired bool
	b := indexed.NewBuilder("id")
	b.Add(indexed.Callback{
		Name:    "c1",
		Matcher: matcher.AndOf(matcher.EqualTo("id", 1), matcher.GreaterThan("seq", 10)),
		Action:  func(matcher.Extractor, ...any) { fired = true },
	})

	h, _, err := b.Build()
	require.NoError(t, err)

	// "id" alone makes c1 a candidate (seq is not an indexed field, so c1
	// is unconstrained on the index and always a candidate when id == 1);
	// the residual check must still reject seq <= 10.
	matched := h.Dispatch(fakeMsg{"id": 1, "seq": 3})
	assert.False(t, matched)
	assert.False(t, fired)

	matched = h.Dispatch(fakeMsg{"id": 1, "seq": 20})
	assert.True(t, matched)
	assert.True(t, fired)
}

func TestUnsatisfiableMatcherWarning(t *testing.T) {
	b := indexed.NewBuilder("id")
	b.Add(indexed.Callback{
		Name:    "impossible",
		Matcher: matcher.AndOf(matcher.EqualTo("id", 5), matcher.EqualTo("id", 6)),
		Action:  func(matcher.Extractor, ...any) {},
	})

	_, warnings, err := b.Build()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "impossible", warnings[0].Callback)
}

func TestEmptyHandlerAlwaysUnmatched(t *testing.T) {
	h, _, err := indexed.NewBuilder("id").Build()
	require.NoError(t, err)
	assert.False(t, h.Dispatch(fakeMsg{"id": 1}))
}

func TestExtraArgsThreadedThrough(t *testing.T) {
	var gotExtra []any
	b := indexed.NewBuilder("id")
	b.Add(indexed.Callback{
		Name:    "c1",
		Matcher: matcher.EqualTo("id", 1),
		Action:  func(_ matcher.Extractor, extra ...any) { gotExtra = extra },
	})
	h, _, err := b.Build()
	require.NoError(t, err)

	h.Dispatch(fakeMsg{"id": 1}, "ctx", 42)
	assert.Equal(t, []any{"ctx", 42}, gotExtra)
}
