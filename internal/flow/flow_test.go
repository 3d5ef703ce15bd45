package flow_test

import (
	"testing"

	"github.com/cib-project/cib/internal/flow"
	"github.com/cib-project/cib/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*flow.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

// TestLinearization exercises spec.md §8 scenario 1: A>>B, A>>C, B>>D, C>>D
// must linearize with A first and D last, and with the lexicographic
// tie-break, deterministically ABCD.
func TestLinearization(t *testing.T) {
	var order []string
	rec := func(name string) *flow.Node {
		n := name
		return flow.NewAction(n, func() { order = append(order, n) })
	}
	a, b, c, d := rec("A"), rec("B"), rec("C"), rec("D")

	expr := flow.Parallel(
		flow.Parallel(flow.Star(a), flow.Star(b)),
		flow.Parallel(flow.Star(c), flow.Star(d)),
	)
	expr = flow.Parallel(expr, flow.Before(flow.Step(a), flow.Step(b)))
	expr = flow.Parallel(expr, flow.Before(flow.Step(a), flow.Step(c)))
	expr = flow.Parallel(expr, flow.Before(flow.Step(b), flow.Step(d)))
	expr = flow.Parallel(expr, flow.Before(flow.Step(c), flow.Step(d)))

	g, err := flow.Build(expr)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(g.Order()))

	g.Run(flow.NoArgs)
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestEmptyFlowIsNoop(t *testing.T) {
	g, err := flow.Build(flow.Expr{Mentioned: map[*flow.Node]int{}})
	require.NoError(t, err)
	assert.Empty(t, g.Order())
	g.Run(flow.NoArgs) // must not panic
}

func TestMissingStepError(t *testing.T) {
	a := flow.NewAction("a", func() {})
	b := flow.NewAction("b", func() {})
	expr := flow.Parallel(flow.Star(a), flow.Before(flow.Step(a), flow.Step(b)))
	_, err := flow.Build(expr)
	require.Error(t, err)
	var missing *flow.MissingStepError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"b"}, missing.Names)
}

func TestDuplicateStepError(t *testing.T) {
	a := flow.NewAction("a", func() {})
	expr := flow.Parallel(flow.Star(a), flow.Star(a))
	_, err := flow.Build(expr)
	require.Error(t, err)
	var dup *flow.DuplicateStepError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, []string{"a"}, dup.Names)
}

func TestCycleError(t *testing.T) {
	a := flow.NewAction("a", func() {})
	b := flow.NewAction("b", func() {})
	expr := flow.Parallel(flow.Star(a), flow.Star(b))
	expr = flow.Parallel(expr, flow.Before(flow.Step(a), flow.Step(b)))
	expr = flow.Parallel(expr, flow.Before(flow.Step(b), flow.Step(a)))
	_, err := flow.Build(expr)
	require.Error(t, err)
	var cyc *flow.CycleError
	require.ErrorAs(t, err, &cyc)
}

// TestWeakerEdgePredicate exercises spec.md §8 scenario 6.
func TestWeakerEdgePredicate(t *testing.T) {
	p := matcher.EqualTo("feature", 1)
	q := matcher.EqualTo("region", 1)
	a := flow.NewAction("a", func() {}).WithPred(p)
	b := flow.NewAction("b", func() {}).WithPred(matcher.AndOf(p, q))

	expr := flow.Parallel(flow.Star(a), flow.Star(b))
	expr = flow.Parallel(expr, flow.BeforeWithPred(flow.Step(a), flow.Step(b), p))

	_, err := flow.Build(expr)
	require.Error(t, err)
	var weak *flow.WeakerEdgePredicateError
	require.ErrorAs(t, err, &weak)
	assert.Contains(t, weak.MissingFor, "b")
}

type fakeArgs map[string]matcher.Value

func (m fakeArgs) FieldValue(name string) (matcher.Value, bool) { v, ok := m[name]; return v, ok }

func TestPredicateGatesRun(t *testing.T) {
	var ran []string
	a := flow.NewAction("a", func() { ran = append(ran, "a") }).WithPred(matcher.EqualTo("flag", 1))
	b := flow.NewAction("b", func() { ran = append(ran, "b") })

	expr := flow.Parallel(flow.Star(a), flow.Star(b))
	expr = flow.Parallel(expr, flow.BeforeWithPred(flow.Step(a), flow.Step(b), matcher.EqualTo("flag", 1)))

	g, err := flow.Build(expr)
	require.NoError(t, err)

	g.Run(fakeArgs{"flag": 0})
	assert.Equal(t, []string{"b"}, ran)
}
