package flowviz_test

import (
	"testing"

	"github.com/cib-project/cib/internal/flow"
	"github.com/cib-project/cib/internal/flow/flowviz"
	"github.com/cib-project/cib/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOTRendersNodesAndEdges(t *testing.T) {
	a := flow.NewAction("a", func() {})
	b := flow.NewMilestone("b done").WithPred(matcher.EqualTo("feature", 1))

	expr := flow.Parallel(flow.Star(a), flow.Star(b))
	expr = flow.Parallel(expr, flow.BeforeWithPred(flow.Step(a), flow.Step(b), matcher.EqualTo("feature", 1)))

	g, err := flow.Build(expr)
	require.NoError(t, err)

	dot := flowviz.DOT(g, "demo")
	assert.Contains(t, dot, "digraph demo {")
	assert.Contains(t, dot, "shape=box")
	assert.Contains(t, dot, "shape=diamond")
	assert.Contains(t, dot, "feature == 1")
	assert.Contains(t, dot, "->")
}

func TestMermaidRendersNodesAndEdges(t *testing.T) {
	a := flow.NewAction("a", func() {})
	b := flow.NewAction("b", func() {})

	expr := flow.Parallel(flow.Star(a), flow.Star(b))
	expr = flow.Parallel(expr, flow.Before(flow.Step(a), flow.Step(b)))

	g, err := flow.Build(expr)
	require.NoError(t, err)

	out := flowviz.Mermaid(g)
	assert.Contains(t, out, "flowchart LR")
	assert.Contains(t, out, "-->")
}
