package indexed

import (
	"log/slog"

	"github.com/cib-project/cib/internal/indexed/bitset"
	"github.com/cib-project/cib/internal/indexed/lookup"
	"github.com/cib-project/cib/internal/matcher"
)

// IndexFactory builds a FieldLookup from a field's constrained
// value->bitset entries; lookup.NewDense is the default for every field.
type IndexFactory func(entries map[int64]bitset.Set) FieldLookup

func defaultFactory(entries map[int64]bitset.Set) FieldLookup {
	return lookup.NewDense(entries)
}

// Builder accumulates callbacks and the set of fields to index, per
// spec.md §4.3's "field index spec". Fields are indexed in the order
// declared.
type Builder struct {
	fields    []string
	factories map[string]IndexFactory
	callbacks []Callback
	logger    *slog.Logger
}

// NewBuilder starts a Builder over the given indexed field names.
func NewBuilder(fields ...string) *Builder {
	return &Builder{fields: append([]string(nil), fields...), factories: map[string]IndexFactory{}}
}

// WithLogger attaches a logger the built Handler uses for unmatched-message
// diagnostics.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithIndexFactory overrides the lookup structure used for one field, e.g. a
// factory returning internal/indexed/rle.NewIndex(entries) for a field whose
// values form long identical-bitset runs (rle.NewIndex itself returns
// lookup.Index, so it is wrapped rather than passed directly).
func (b *Builder) WithIndexFactory(field string, f IndexFactory) *Builder {
	b.factories[field] = f
	return b
}

// Add appends a callback to the builder's input tuple. Callback order is
// preserved through to dispatch (spec.md §4.3 "Guarantees").
func (b *Builder) Add(cb Callback) *Builder {
	b.callbacks = append(b.callbacks, cb)
	return b
}

// fieldConstraint records what one product term says about one indexed
// field: either a finite set of consistent values, or "not enumerable"
// (some relation other than equality/membership constrains it), which
// Build treats the same as unconstrained for indexing purposes — the
// mandatory residual check (spec.md §9) still rejects any false positive
// this conservatism admits.
type fieldConstraint struct {
	touched    bool
	enumerable bool
	values     map[int64]bool
}

// scanProduct inspects one AND-term of a callback's sum-of-products form
// for its constraint on field.
func scanProduct(term matcher.Matcher, field string) fieldConstraint {
	fc := fieldConstraint{enumerable: true, values: map[int64]bool{}}
	for _, lit := range asLiterals(term) {
		name, ok := literalField(lit)
		if !ok || name != field {
			continue
		}
		fc.touched = true
		leaf, isLeaf := lit.(matcher.Leaf)
		if !isLeaf {
			fc.enumerable = false
			continue
		}
		switch leaf.Rel {
		case matcher.Eq:
			fc.values[leaf.Value] = true
		case matcher.In:
			for _, v := range leaf.Values {
				fc.values[v] = true
			}
		default:
			fc.enumerable = false
		}
	}
	return fc
}

func asLiterals(term matcher.Matcher) []matcher.Matcher {
	if and, ok := term.(matcher.And); ok {
		return []matcher.Matcher(and)
	}
	return []matcher.Matcher{term}
}

func literalField(m matcher.Matcher) (string, bool) {
	switch l := m.(type) {
	case matcher.Leaf:
		return l.Field, true
	case matcher.Not:
		if inner, ok := l.M.(matcher.Leaf); ok {
			return inner.Field, true
		}
	}
	return "", false
}

func sopTerms(sop matcher.Matcher) []matcher.Matcher {
	if or, ok := sop.(matcher.Or); ok {
		return []matcher.Matcher(or)
	}
	return []matcher.Matcher{sop}
}

// Build compiles the accumulated callbacks and field spec into a Handler,
// following spec.md §4.3's preprocessing and index construction steps: for
// each callback, compute sop(matcher) (§4.4), then for each product term
// and each indexed field, collect either the finite set of consistent
// values or mark the field unconstrained for that term; a callback's
// membership in a field's index is the union over its product terms.
func (b *Builder) Build() (*Handler, []UnsatisfiableMatcherWarning, error) {
	n := len(b.callbacks)
	var warnings []UnsatisfiableMatcherWarning

	// members[fj][v] is the set of callback indices consistent with
	// field fj == v and constrained on fj in some product.
	members := make([]map[int64]map[int]bool, len(b.fields))
	// defaultMembers[fj] is the set of callback indices unconstrained on
	// fj in at least one product.
	defaultMembers := make([]map[int]bool, len(b.fields))
	for i := range b.fields {
		members[i] = map[int64]map[int]bool{}
		defaultMembers[i] = map[int]bool{}
	}

	for ci, cb := range b.callbacks {
		if simplified, ok := matcher.Simplify(cb.Matcher).(matcher.Always); ok && !bool(simplified) {
			warnings = append(warnings, UnsatisfiableMatcherWarning{Callback: cb.Name})
		}

		products := sopTerms(matcher.SumOfProducts(cb.Matcher))

		for fj, field := range b.fields {
			unconstrained := false
			values := map[int64]bool{}

			for _, p := range products {
				fc := scanProduct(p, field)
				switch {
				case !fc.touched, !fc.enumerable:
					unconstrained = true
				default:
					for v := range fc.values {
						values[v] = true
					}
				}
			}

			if unconstrained {
				defaultMembers[fj][ci] = true
			}
			for v := range values {
				if members[fj][v] == nil {
					members[fj][v] = map[int]bool{}
				}
				members[fj][v][ci] = true
			}
		}
	}

	fields := make([]FieldIndex, len(b.fields))
	for fj, field := range b.fields {
		entries := make(map[int64]bitset.Set, len(members[fj]))
		for v, callbackSet := range members[fj] {
			bs := bitset.New(n)
			for ci := range callbackSet {
				bs.SetBit(ci)
			}
			entries[v] = bs
		}

		def := bitset.New(n)
		for ci := range defaultMembers[fj] {
			def.SetBit(ci)
		}

		factory := defaultFactory
		if f, ok := b.factories[field]; ok {
			factory = f
		}
		fields[fj] = FieldIndex{Field: field, Lookup: factory(entries), Default: def}
	}

	handler := &Handler{
		callbacks: append([]Callback(nil), b.callbacks...),
		fields:    fields,
		logger:    b.logger,
	}
	return handler, warnings, nil
}
