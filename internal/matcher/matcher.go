// Package matcher implements the boolean matcher algebra cib builds callback
// gating and flow-edge predicates on top of: leaf comparisons against named
// fields, the and/or/not composites, negation, simplification, sum-of-products
// normalization, and structural implication.
//
// A Matcher is evaluated against an Extractor rather than a concrete message
// type so that this package has no dependency on the wire layout in
// internal/field; internal/field's message views implement Extractor.
package matcher

import "fmt"

// Value is the canonical comparison domain for leaf matchers. Field values of
// any integral width are widened to Value for comparison purposes; the field
// layer is responsible for the actual bit-level extraction.
type Value = int64

// Extractor reads a named field's current value out of a message.
// Fields absent from the message (ok == false) never satisfy a leaf matcher.
type Extractor interface {
	FieldValue(name string) (v Value, ok bool)
}

// Matcher is a boolean predicate over a message, with a human-readable
// description used in diagnostics.
type Matcher interface {
	Eval(e Extractor) bool
	Describe() string
	DescribeMatch(e Extractor) string
	// canon returns a canonical string key used for structural equality,
	// ordering, and De Morgan / idempotence rewriting. Commutative composites
	// sort their children's canon keys before joining so that X&&Y and Y&&X
	// produce the same key.
	canon() string
}

// Relation names the comparison a leaf matcher performs.
type Relation int

const (
	Eq Relation = iota
	Ne
	Lt
	Gt
	Le
	Ge
	In
)

func (r Relation) String() string {
	switch r {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	case In:
		return "in"
	default:
		return "?"
	}
}

// Leaf compares a single named field against one value (Eq, Ne, Lt, Gt, Le,
// Ge) or a set of values (In, a disjunction of equalities on the same field).
type Leaf struct {
	Field  string
	Rel    Relation
	Value  Value
	Values []Value // used only when Rel == In
}

// EqualTo builds `field == v`.
func EqualTo(field string, v Value) Leaf { return Leaf{Field: field, Rel: Eq, Value: v} }

// NotEqualTo builds `field != v`.
func NotEqualTo(field string, v Value) Leaf { return Leaf{Field: field, Rel: Ne, Value: v} }

// LessThan builds `field < v`.
func LessThan(field string, v Value) Leaf { return Leaf{Field: field, Rel: Lt, Value: v} }

// GreaterThan builds `field > v`.
func GreaterThan(field string, v Value) Leaf { return Leaf{Field: field, Rel: Gt, Value: v} }

// LessEqual builds `field <= v`.
func LessEqual(field string, v Value) Leaf { return Leaf{Field: field, Rel: Le, Value: v} }

// GreaterEqual builds `field >= v`.
func GreaterEqual(field string, v Value) Leaf { return Leaf{Field: field, Rel: Ge, Value: v} }

// InSet builds the disjunction `field == v[0] || field == v[1] || ...`.
func InSet(field string, vs ...Value) Leaf {
	cp := append([]Value(nil), vs...)
	return Leaf{Field: field, Rel: In, Values: cp}
}

func (l Leaf) Eval(e Extractor) bool {
	v, ok := e.FieldValue(l.Field)
	if !ok {
		return false
	}
	switch l.Rel {
	case Eq:
		return v == l.Value
	case Ne:
		return v != l.Value
	case Lt:
		return v < l.Value
	case Gt:
		return v > l.Value
	case Le:
		return v <= l.Value
	case Ge:
		return v >= l.Value
	case In:
		for _, c := range l.Values {
			if v == c {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (l Leaf) Describe() string {
	if l.Rel == In {
		return fmt.Sprintf("%s in %v", l.Field, l.Values)
	}
	return fmt.Sprintf("%s %s %d", l.Field, l.Rel, l.Value)
}

func (l Leaf) DescribeMatch(e Extractor) string {
	v, ok := e.FieldValue(l.Field)
	if !ok {
		return fmt.Sprintf("F:(%s absent)", l.Describe())
	}
	mark := "F"
	if l.Eval(e) {
		mark = "T"
	}
	return fmt.Sprintf("%s:(%s, %s=%d)", mark, l.Describe(), l.Field, v)
}

func (l Leaf) canon() string {
	if l.Rel == In {
		return fmt.Sprintf("leaf(%s,in,%v)", l.Field, l.Values)
	}
	return fmt.Sprintf("leaf(%s,%d,%d)", l.Field, l.Rel, l.Value)
}

// Always is the constant matcher; Always(true) is ⊤, Always(false) is ⊥.
type Always bool

func (a Always) Eval(Extractor) bool { return bool(a) }
func (a Always) Describe() string {
	if a {
		return "true"
	}
	return "false"
}
func (a Always) DescribeMatch(Extractor) string { return a.Describe() }
func (a Always) canon() string                  { return a.Describe() }

// True and False are the canonical ⊤ and ⊥ matchers.
var True Matcher = Always(true)
var False Matcher = Always(false)
