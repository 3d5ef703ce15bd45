package flow

import "github.com/cib-project/cib/internal/matcher"

// Edge is one obligation that u must run before v, optionally gated by its
// own predicate (which must imply both endpoints' predicates — spec.md
// §4.2 step 3).
type Edge struct {
	From, To *Node
	Pred     matcher.Matcher
}

// Expr is an immutable flow graph fragment built up by Step/Star and
// combined with Before/Parallel; Build consumes a fully composed Expr.
//
// sources/sinks track the fragment's entry/exit nodes so that chaining
// (a >> b) >> c attaches c after b specifically, not after every node a
// has ever touched — the same role cib's C++ DSL's "after" list serves.
type Expr struct {
	Nodes     []*Node
	Edges     []Edge
	Mentioned map[*Node]int

	sources []*Node
	sinks   []*Node
}

// Step introduces a node into the graph with no edges — the "declared but
// not yet mentioned" state. A bare Step that's never Star-ed anywhere in the
// composed expression, but is referenced by an edge, is a MissingFlowStep.
func Step(n *Node) Expr {
	return Expr{
		Nodes:     []*Node{n},
		Mentioned: map[*Node]int{},
		sources:   []*Node{n},
		sinks:     []*Node{n},
	}
}

// Star marks n as mentioned (the `*n` DSL prefix): every node used in an
// edge must be Star-ed exactly once somewhere in the full expression.
func Star(n *Node) Expr {
	e := Step(n)
	e.Mentioned[n] = 1
	return e
}

// Before requires every sink of a to run before every source of b (the `>>`
// operator). Its edges carry Always(true), so Build rejects them with a
// WeakerEdgePredicateError when either endpoint has any other predicate;
// use BeforeWithPred for edges between predicated steps.
func Before(a, b Expr) Expr { return BeforeWithPred(a, b, nil) }

// BeforeWithPred is Before with an explicit edge predicate.
func BeforeWithPred(a, b Expr, pred matcher.Matcher) Expr {
	out := merge(a, b)
	p := pred
	if p == nil {
		p = matcher.True
	}
	for _, from := range a.sinks {
		for _, to := range b.sources {
			out.Edges = append(out.Edges, Edge{From: from, To: to, Pred: p})
		}
	}
	out.sources = a.sources
	out.sinks = b.sinks
	return out
}

// Parallel requires both a and b's nodes to appear, without constraining
// their relative order (the `&&` operator).
func Parallel(a, b Expr) Expr {
	out := merge(a, b)
	out.sources = append(append([]*Node{}, a.sources...), b.sources...)
	out.sinks = append(append([]*Node{}, a.sinks...), b.sinks...)
	return out
}

func merge(a, b Expr) Expr {
	nodes := dedupeNodes(append(append([]*Node{}, a.Nodes...), b.Nodes...))
	edges := append(append([]Edge{}, a.Edges...), b.Edges...)
	mentioned := make(map[*Node]int, len(a.Mentioned)+len(b.Mentioned))
	for n, c := range a.Mentioned {
		mentioned[n] += c
	}
	for n, c := range b.Mentioned {
		mentioned[n] += c
	}
	return Expr{Nodes: nodes, Edges: edges, Mentioned: mentioned}
}

func dedupeNodes(nodes []*Node) []*Node {
	seen := make(map[*Node]bool, len(nodes))
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
