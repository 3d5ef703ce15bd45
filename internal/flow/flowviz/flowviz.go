// Package flowviz renders a built flow graph as Graphviz DOT or Mermaid
// source, for the diagnostic dumps a flow-graph backed service exposes
// alongside its normal run path (see cmd/cibdemo's "graph" subcommand).
package flowviz

import (
	"fmt"
	"strings"

	"github.com/cib-project/cib/internal/flow"
)

// DOT renders g as a Graphviz "digraph" description. Milestones are drawn
// as diamonds, actions as boxes; a node whose predicate isn't Always(true)
// gets its Describe() string as a label suffix.
func DOT(g *flow.Graph, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotID(name))
	b.WriteString("  rankdir=LR;\n")

	for _, n := range g.Order() {
		shape := "box"
		if n.Milestone {
			shape = "diamond"
		}
		label := n.Name
		if n.Pred != nil && n.Pred.Describe() != "true" {
			label = fmt.Sprintf("%s\\n[%s]", n.Name, n.Pred.Describe())
		}
		fmt.Fprintf(&b, "  %s [shape=%s, label=%q];\n", dotID(n.Name), shape, label)
	}

	for _, e := range g.Edges() {
		if e.Pred != nil && e.Pred.Describe() != "true" {
			fmt.Fprintf(&b, "  %s -> %s [label=%q];\n", dotID(e.From.Name), dotID(e.To.Name), e.Pred.Describe())
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s;\n", dotID(e.From.Name), dotID(e.To.Name))
	}

	b.WriteString("}\n")
	return b.String()
}

// Mermaid renders g as a Mermaid flowchart description.
func Mermaid(g *flow.Graph) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	for _, n := range g.Order() {
		open, close := "[", "]"
		if n.Milestone {
			open, close = "{{", "}}"
		}
		label := n.Name
		if n.Pred != nil && n.Pred.Describe() != "true" {
			label = fmt.Sprintf("%s [%s]", n.Name, n.Pred.Describe())
		}
		fmt.Fprintf(&b, "  %s%s%q%s\n", mermaidID(n.Name), open, label, close)
	}

	for _, e := range g.Edges() {
		if e.Pred != nil && e.Pred.Describe() != "true" {
			fmt.Fprintf(&b, "  %s -->|%s| %s\n", mermaidID(e.From.Name), e.Pred.Describe(), mermaidID(e.To.Name))
			continue
		}
		fmt.Fprintf(&b, "  %s --> %s\n", mermaidID(e.From.Name), mermaidID(e.To.Name))
	}

	return b.String()
}

// dotID and mermaidID sanitize a step name into an identifier safe for each
// format; both languages forbid bare identifiers containing spaces or
// most punctuation, so anything but [A-Za-z0-9_] is replaced with "_".
func dotID(s string) string     { return sanitize(s) }
func mermaidID(s string) string { return sanitize(s) }

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "n_" + out
	}
	return out
}
