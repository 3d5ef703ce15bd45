package cibproject

import (
	"github.com/cib-project/cib/internal/flow"
	"github.com/cib-project/cib/internal/nexus"
)

// MorningRoutine and EveningRoutine are distinct exported service types,
// even though both just wrap a built flow.Graph — spec.md's Tag identity
// is the type, not the shape, mirroring the original's distinct
// Morning_Routine_t/Evening_Routine_t marker structs that exist solely to
// give flow::service<> two different addresses to extend<>.
type MorningRoutine struct{ Graph *flow.Graph }

// Run executes the morning routine's linearization once.
func (s MorningRoutine) Run() { s.Graph.Run(flow.NoArgs) }

// EveningRoutine is MorningRoutine's evening counterpart.
type EveningRoutine struct{ Graph *flow.Graph }

// Run executes the evening routine's linearization once.
func (s EveningRoutine) Run() { s.Graph.Run(flow.NoArgs) }

// FlowBuilder accumulates flow.Expr fragments contributed by
// extend<Tag>(fragment) across every component, merges them with
// flow.Parallel, and hands the result to wrap to produce the tag-specific
// exported value (spec.md §4.2: "flow builder collects fragments, build()
// produces the linearization").
type FlowBuilder struct {
	fragments []flow.Expr
	wrap      func(*flow.Graph) any
}

// NewFlowBuilderFactory returns an Export.New constructor that seeds an
// empty FlowBuilder wrapping built graphs with wrap — one factory per
// routine tag.
func NewFlowBuilderFactory(wrap func(*flow.Graph) any) func() nexus.Builder {
	return func() nexus.Builder { return &FlowBuilder{wrap: wrap} }
}

// Add appends each arg, asserted as a flow.Expr, to the builder's fragment
// list.
func (b *FlowBuilder) Add(args ...any) nexus.Builder {
	fragments := append([]flow.Expr(nil), b.fragments...)
	for _, a := range args {
		fragments = append(fragments, a.(flow.Expr))
	}
	return &FlowBuilder{fragments: fragments, wrap: b.wrap}
}

// Build merges every contributed fragment and runs flow.Build over the
// result.
func (b *FlowBuilder) Build() (any, error) {
	if len(b.fragments) == 0 {
		return b.wrap(&flow.Graph{}), nil
	}
	merged := b.fragments[0]
	for _, f := range b.fragments[1:] {
		merged = flow.Parallel(merged, f)
	}
	g, err := flow.Build(merged)
	if err != nil {
		return nil, err
	}
	return b.wrap(g), nil
}
