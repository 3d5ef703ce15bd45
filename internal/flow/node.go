// Package flow implements the `>>` (before) / `&&` (parallel) / `*` (mentioned)
// flow graph DSL and its builder: node/edge extraction, mentioned-set
// validation, predicate-implication checking, Kahn's-algorithm topological
// sort with a lexicographic tie-break, and the emitted runner. It also
// provides the bidirectional sequencer variant (forward()/backward()).
package flow

import "github.com/cib-project/cib/internal/matcher"

// Action is a step's runtime behavior. Milestone steps have no Action.
type Action func()

// Node is one step of a flow graph: an action or a milestone, named for
// diagnostics, gated at run time by a predicate (Always(true) when absent).
// Node identity for graph purposes is the pointer, the same way spec.md's
// Tag is an opaque identity — two *Node values are the "same step" iff they
// are the same pointer, so DSL expressions reuse one *Node per logical step.
type Node struct {
	Name      string
	Milestone bool
	Action    Action
	Pred      matcher.Matcher
}

// NewAction creates a named action step.
func NewAction(name string, action Action) *Node {
	return &Node{Name: name, Action: action, Pred: matcher.True}
}

// NewMilestone creates a named synchronization point with no action.
func NewMilestone(name string) *Node {
	return &Node{Name: name, Milestone: true, Pred: matcher.True}
}

// WithPred sets n's gating predicate (replacing Always(true)) and returns n,
// so it can be chained at construction: flow.NewAction("x", fn).WithPred(p).
// It mutates in place rather than copying so that n's pointer identity —
// which the DSL and the mentioned-set check rely on — is preserved.
func (n *Node) WithPred(pred matcher.Matcher) *Node {
	n.Pred = pred
	return n
}
