package flow

import (
	"sort"

	"github.com/cib-project/cib/internal/matcher"
)

// Graph is the fully validated, topologically sorted result of Build: an
// immutable linearization plus the edge set it was built from (kept for
// flowviz rendering).
type Graph struct {
	order []*Node
	edges []Edge
}

// Order returns the linearization Build produced.
func (g *Graph) Order() []*Node { return g.order }

// Edges returns the edge set the graph was built from.
func (g *Graph) Edges() []Edge { return g.edges }

// Build validates a composed Expr and emits its linearization: mentioned-set
// checks, predicate-implication checks on every edge, then a topological
// sort (Kahn's algorithm, lexicographic tie-break for determinism).
func Build(expr Expr) (*Graph, error) {
	if err := checkMentioned(expr); err != nil {
		return nil, err
	}
	if err := checkEdgePredicates(expr.Edges); err != nil {
		return nil, err
	}
	order, err := topoSort(expr.Nodes, expr.Edges)
	if err != nil {
		return nil, err
	}
	return &Graph{order: order, edges: expr.Edges}, nil
}

func checkMentioned(expr Expr) error {
	var missing, dup []string
	for _, n := range expr.Nodes {
		switch expr.Mentioned[n] {
		case 0:
			missing = append(missing, n.Name)
		case 1:
			// exactly once: fine
		default:
			dup = append(dup, n.Name)
		}
	}
	sort.Strings(missing)
	sort.Strings(dup)
	if len(missing) > 0 {
		return &MissingStepError{Names: missing}
	}
	if len(dup) > 0 {
		return &DuplicateStepError{Names: dup}
	}
	return nil
}

func checkEdgePredicates(edges []Edge) error {
	for _, e := range edges {
		needFrom := !matcher.Implies(e.Pred, e.From.Pred)
		needTo := !matcher.Implies(e.Pred, e.To.Pred)
		if needFrom || needTo {
			var missingFor []string
			if needFrom {
				missingFor = append(missingFor, e.From.Name)
			}
			if needTo {
				missingFor = append(missingFor, e.To.Name)
			}
			return &WeakerEdgePredicateError{From: e.From.Name, To: e.To.Name, MissingFor: missingFor}
		}
	}
	return nil
}

// topoSort runs Kahn's algorithm over nodes/edges, breaking ties between
// simultaneously-available nodes by ascending name so output is
// deterministic (spec.md §4.2 "Tie-breaks").
func topoSort(nodes []*Node, edges []Edge) ([]*Node, error) {
	indeg := make(map[*Node]int, len(nodes))
	adj := make(map[*Node][]*Node, len(nodes))
	for _, n := range nodes {
		indeg[n] = 0
	}
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		indeg[e.To]++
	}

	var avail []*Node
	for _, n := range nodes {
		if indeg[n] == 0 {
			avail = append(avail, n)
		}
	}

	order := make([]*Node, 0, len(nodes))
	for len(avail) > 0 {
		sort.Slice(avail, func(i, j int) bool { return avail[i].Name < avail[j].Name })
		n := avail[0]
		avail = avail[1:]
		order = append(order, n)
		for _, m := range adj[n] {
			indeg[m]--
			if indeg[m] == 0 {
				avail = append(avail, m)
			}
		}
	}

	if len(order) != len(nodes) {
		var remaining []string
		for _, n := range nodes {
			if indeg[n] > 0 {
				remaining = append(remaining, n.Name)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Remaining: remaining}
	}
	return order, nil
}

// Run executes the graph's linearization once: milestones are skipped (they
// carry no action), and any node whose predicate evaluates false against
// args is skipped without error.
func (g *Graph) Run(args matcher.Extractor) {
	for _, n := range g.order {
		if n.Milestone || n.Action == nil {
			continue
		}
		if n.Pred != nil && !n.Pred.Eval(args) {
			continue
		}
		n.Action()
	}
}

type noArgs struct{}

func (noArgs) FieldValue(string) (matcher.Value, bool) { return 0, false }

// NoArgs is an Extractor with no fields, for graphs whose every predicate is
// Always(true).
var NoArgs matcher.Extractor = noArgs{}
