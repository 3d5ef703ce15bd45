package matcher

// SumOfProducts normalizes m to OR(AND(leaf-or-negated-leaf, ...), ...): push
// negations to the leaves (De Morgan), then distribute AND over OR. The
// result is always an Or whose children are And (even a single-term or
// single-literal result is wrapped), except for the ⊤/⊥ constants, so the
// shape is stable across repeated application (sop(sop(M)) has the same
// nested shape as sop(M), per spec.md §8).
func SumOfProducts(m Matcher) Matcher {
	nnf := toNNF(m)
	dist := distribute(nnf)
	reduced := simplifyOnce(dist)
	return sopShape(reduced)
}

// toNNF pushes negation down to the leaves via De Morgan and double-negation
// elimination, leaving And/Or nodes as the only composites above leaves.
func toNNF(m Matcher) Matcher {
	switch t := m.(type) {
	case Not:
		switch in := t.M.(type) {
		case Leaf, Always:
			return Negate(in)
		case Not:
			return toNNF(in.M)
		case And:
			children := make(Or, len(in))
			for i, c := range in {
				children[i] = toNNF(Not{M: c})
			}
			return children
		case Or:
			children := make(And, len(in))
			for i, c := range in {
				children[i] = toNNF(Not{M: c})
			}
			return children
		default:
			return Not{M: toNNF(t.M)}
		}
	case And:
		children := make(And, len(t))
		for i, c := range t {
			children[i] = toNNF(c)
		}
		return children
	case Or:
		children := make(Or, len(t))
		for i, c := range t {
			children[i] = toNNF(c)
		}
		return children
	default:
		return m
	}
}

// distribute expands AND over OR so the result has no AND node above an OR
// node: AND(a, OR(b, c)) becomes OR(AND(a,b), AND(a,c)).
func distribute(m Matcher) Matcher {
	switch t := m.(type) {
	case And:
		children := make([]Matcher, len(t))
		for i, c := range t {
			children[i] = distribute(c)
		}
		return distributeAnd(children)
	case Or:
		var terms []Matcher
		for _, c := range t {
			d := distribute(c)
			if o, ok := d.(Or); ok {
				terms = append(terms, o...)
			} else {
				terms = append(terms, d)
			}
		}
		return Or(terms)
	default:
		return m
	}
}

func distributeAnd(children []Matcher) Matcher {
	acc := [][]Matcher{{}}
	for _, c := range children {
		var disjuncts []Matcher
		if o, ok := c.(Or); ok {
			disjuncts = []Matcher(o)
		} else {
			disjuncts = []Matcher{c}
		}

		var next [][]Matcher
		for _, prefix := range acc {
			for _, d := range disjuncts {
				var lits []Matcher
				if a, ok := d.(And); ok {
					lits = a
				} else {
					lits = []Matcher{d}
				}
				combo := append(append([]Matcher{}, prefix...), lits...)
				next = append(next, combo)
			}
		}
		acc = next
	}

	terms := make([]Matcher, len(acc))
	for i, lits := range acc {
		terms[i] = And(lits)
	}
	return Or(terms)
}

// sopShape forces the Or-of-And shape, wrapping single terms/literals as
// needed, except for the ⊤/⊥ constants which stay as-is.
func sopShape(m Matcher) Matcher {
	if _, ok := m.(Always); ok {
		return m
	}
	if o, ok := m.(Or); ok {
		terms := make([]Matcher, len(o))
		for i, c := range o {
			terms[i] = asProduct(c)
		}
		return Or(terms)
	}
	return Or{asProduct(m)}
}

func asProduct(m Matcher) Matcher {
	if _, ok := m.(And); ok {
		return m
	}
	return And{m}
}
