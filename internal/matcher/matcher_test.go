package matcher_test

import (
	"testing"

	"github.com/cib-project/cib/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMsg map[string]matcher.Value

func (f fakeMsg) FieldValue(name string) (matcher.Value, bool) {
	v, ok := f[name]
	return v, ok
}

func TestLeafEval(t *testing.T) {
	m := matcher.EqualTo("id", 0x80)
	assert.True(t, m.Eval(fakeMsg{"id": 0x80}))
	assert.False(t, m.Eval(fakeMsg{"id": 0x81}))
	assert.False(t, m.Eval(fakeMsg{"other": 1}))
}

func TestNegateRelationalLeaves(t *testing.T) {
	cases := []struct {
		in, want matcher.Leaf
	}{
		{matcher.EqualTo("f", 1), matcher.NotEqualTo("f", 1)},
		{matcher.LessThan("f", 1), matcher.GreaterEqual("f", 1)},
		{matcher.GreaterThan("f", 1), matcher.LessEqual("f", 1)},
	}
	for _, c := range cases {
		got := matcher.Negate(c.in)
		assert.Equal(t, c.want, got)
		// negate(negate(L)) == L structurally.
		assert.Equal(t, c.in, matcher.Negate(got))
	}
}

func TestSimplifyComplementationAndIdentity(t *testing.T) {
	f := matcher.EqualTo("f", 5)
	assert.Equal(t, matcher.False.Describe(), matcher.Simplify(matcher.And{f, matcher.Negate(f)}).Describe())
	assert.Equal(t, matcher.True.Describe(), matcher.Simplify(matcher.Or{f, matcher.Negate(f)}).Describe())
	assert.True(t, matcher.Equivalent(matcher.Simplify(matcher.And{f, matcher.True}), f))
	assert.True(t, matcher.Equivalent(matcher.Simplify(matcher.Or{f, matcher.False}), f))
}

func TestSimplifyRelationalCollapse(t *testing.T) {
	conflict := matcher.And{matcher.EqualTo("f", 5), matcher.EqualTo("f", 6)}
	assert.True(t, matcher.Equivalent(matcher.Simplify(conflict), matcher.False))

	tighter := matcher.And{matcher.LessThan("f", 10), matcher.LessThan("f", 3)}
	assert.True(t, matcher.Equivalent(matcher.Simplify(tighter), matcher.LessThan("f", 3)))
}

func TestSimplifyAbsorption(t *testing.T) {
	x := matcher.EqualTo("f", 1)
	y := matcher.EqualTo("g", 2)
	expr := matcher.And{x, matcher.Or{x, y}}
	assert.True(t, matcher.Equivalent(matcher.Simplify(expr), x))
}

func TestSimplifyIdempotent(t *testing.T) {
	exprs := []matcher.Matcher{
		matcher.And{matcher.EqualTo("a", 1), matcher.Or{matcher.EqualTo("b", 2), matcher.NotEqualTo("c", 3)}},
		matcher.Not{M: matcher.And{matcher.EqualTo("a", 1), matcher.EqualTo("b", 2)}},
		matcher.InSet("op", 1, 2, 3),
	}
	for _, e := range exprs {
		once := matcher.Simplify(e)
		twice := matcher.Simplify(once)
		assert.True(t, matcher.Equivalent(once, twice), "simplify not idempotent for %s", e.Describe())
	}
}

func TestSimplifyPreservesSemantics(t *testing.T) {
	expr := matcher.And{
		matcher.EqualTo("id", 0x80),
		matcher.Or{matcher.EqualTo("op", 1), matcher.EqualTo("op", 2)},
	}
	simplified := matcher.Simplify(expr)
	msgs := []fakeMsg{
		{"id": 0x80, "op": 1},
		{"id": 0x80, "op": 2},
		{"id": 0x80, "op": 3},
		{"id": 0x81, "op": 1},
	}
	for _, m := range msgs {
		require.Equal(t, expr.Eval(m), simplified.Eval(m))
	}
}

func TestImpliesBasics(t *testing.T) {
	a := matcher.EqualTo("f", 5)
	b := matcher.EqualTo("f", 6)
	assert.True(t, matcher.Implies(matcher.And{a, b}, a))
	assert.True(t, matcher.Implies(a, matcher.Or{a, b}))
	assert.True(t, matcher.Implies(matcher.EqualTo("f", 5), matcher.LessThan("f", 6)))
	assert.False(t, matcher.Implies(matcher.EqualTo("f", 5), matcher.LessThan("f", 5)))
}

func TestSumOfProductsShapeAndSemantics(t *testing.T) {
	expr := matcher.And{
		matcher.Or{matcher.EqualTo("a", 1), matcher.EqualTo("a", 2)},
		matcher.EqualTo("b", 3),
	}
	sop := matcher.SumOfProducts(expr)
	or, ok := sop.(matcher.Or)
	require.True(t, ok, "sop must be an Or of And")
	for _, term := range or {
		_, ok := term.(matcher.And)
		assert.True(t, ok, "each sop term must be an And")
	}

	msgs := []fakeMsg{
		{"a": 1, "b": 3},
		{"a": 2, "b": 3},
		{"a": 3, "b": 3},
		{"a": 1, "b": 4},
	}
	for _, m := range msgs {
		require.Equal(t, expr.Eval(m), sop.Eval(m))
	}

	// sop(sop(M)) is shape-stable.
	sop2 := matcher.SumOfProducts(sop)
	_, ok = sop2.(matcher.Or)
	assert.True(t, ok)
}

func TestSumOfProductsNegation(t *testing.T) {
	expr := matcher.Not{M: matcher.And{matcher.EqualTo("a", 1), matcher.EqualTo("b", 2)}}
	sop := matcher.SumOfProducts(expr)

	msgs := []fakeMsg{
		{"a": 1, "b": 2},
		{"a": 1, "b": 3},
		{"a": 2, "b": 2},
	}
	for _, m := range msgs {
		require.Equal(t, expr.Eval(m), sop.Eval(m))
	}
}
