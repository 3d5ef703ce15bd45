package matcher

import (
	"sort"
	"strings"
)

// And is the n-ary conjunction of its children. An empty And is ⊤.
type And []Matcher

func AndOf(ms ...Matcher) And { return And(ms) }

func (a And) Eval(e Extractor) bool {
	for _, m := range a {
		if !m.Eval(e) {
			return false
		}
	}
	return true
}

func (a And) Describe() string { return joinDescribe(a, " && ") }

func (a And) DescribeMatch(e Extractor) string { return joinDescribeMatch(a, e, " && ") }

func (a And) canon() string {
	keys := make([]string, len(a))
	for i, m := range a {
		keys[i] = m.canon()
	}
	sort.Strings(keys)
	return "and(" + strings.Join(keys, ",") + ")"
}

// Or is the n-ary disjunction of its children. An empty Or is ⊥.
type Or []Matcher

func OrOf(ms ...Matcher) Or { return Or(ms) }

func (o Or) Eval(e Extractor) bool {
	for _, m := range o {
		if m.Eval(e) {
			return true
		}
	}
	return false
}

func (o Or) Describe() string { return joinDescribe(o, " || ") }

func (o Or) DescribeMatch(e Extractor) string { return joinDescribeMatch(o, e, " || ") }

func (o Or) canon() string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.canon()
	}
	sort.Strings(keys)
	return "or(" + strings.Join(keys, ",") + ")"
}

// Not negates its operand without attempting the relational rewrite that
// Negate performs; used by Negate itself as the default fallback and by
// SumOfProducts when a leaf has no analytic negation (e.g. In).
type Not struct{ M Matcher }

func (n Not) Eval(e Extractor) bool             { return !n.M.Eval(e) }
func (n Not) Describe() string                  { return "!(" + n.M.Describe() + ")" }
func (n Not) DescribeMatch(e Extractor) string  { return "!(" + n.M.DescribeMatch(e) + ")" }
func (n Not) canon() string                     { return "not(" + n.M.canon() + ")" }

func joinDescribe(ms []Matcher, sep string) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = "(" + m.Describe() + ")"
	}
	return strings.Join(parts, sep)
}

func joinDescribeMatch(ms []Matcher, e Extractor, sep string) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = "(" + m.DescribeMatch(e) + ")"
	}
	return strings.Join(parts, sep)
}

// Negate returns the logical negation of m. Relational leaves get the
// analytically opposite relation (spec: negate(less_than) = greater_equal,
// etc.); everything else falls back to wrapping in Not.
func Negate(m Matcher) Matcher {
	if l, ok := m.(Leaf); ok {
		switch l.Rel {
		case Eq:
			return Leaf{Field: l.Field, Rel: Ne, Value: l.Value}
		case Ne:
			return Leaf{Field: l.Field, Rel: Eq, Value: l.Value}
		case Lt:
			return Leaf{Field: l.Field, Rel: Ge, Value: l.Value}
		case Ge:
			return Leaf{Field: l.Field, Rel: Lt, Value: l.Value}
		case Gt:
			return Leaf{Field: l.Field, Rel: Le, Value: l.Value}
		case Le:
			return Leaf{Field: l.Field, Rel: Gt, Value: l.Value}
		}
	}
	if a, ok := m.(Always); ok {
		return Always(!a)
	}
	if n, ok := m.(Not); ok {
		return n.M
	}
	return Not{M: m}
}
