package matcher

// Simplify applies the rewrite rules of the matcher algebra (idempotence,
// identity, annihilation, complementation, absorption, double negation,
// De Morgan, and same-field relational collapse) bottom-up to a fixed point.
func Simplify(m Matcher) Matcher {
	for {
		next := simplifyOnce(m)
		if next.canon() == m.canon() {
			return next
		}
		m = next
	}
}

func simplifyOnce(m Matcher) Matcher {
	switch t := m.(type) {
	case Not:
		inner := simplifyOnce(t.M)
		switch in := inner.(type) {
		case Not:
			return in.M // double negation
		case And:
			negated := make(Or, len(in))
			for i, c := range in {
				negated[i] = simplifyOnce(Not{M: c})
			}
			return simplifyAnyOr(negated)
		case Or:
			negated := make(And, len(in))
			for i, c := range in {
				negated[i] = simplifyOnce(Not{M: c})
			}
			return simplifyAnyAnd(negated)
		case Leaf, Always:
			return Negate(inner)
		default:
			return Not{M: inner}
		}
	case And:
		children := make([]Matcher, 0, len(t))
		for _, c := range t {
			children = append(children, simplifyOnce(c))
		}
		return simplifyAnyAnd(children)
	case Or:
		children := make([]Matcher, 0, len(t))
		for _, c := range t {
			children = append(children, simplifyOnce(c))
		}
		return simplifyAnyOr(children)
	default:
		return m
	}
}

// simplifyAnyAnd flattens nested Ands, drops ⊤ children, dedupes identical
// children, collapses same-field relational pairs, and short-circuits to ⊥ on
// annihilation or complementation.
func simplifyAnyAnd(children []Matcher) Matcher {
	flat := make([]Matcher, 0, len(children))
	for _, c := range children {
		if sub, ok := c.(And); ok {
			flat = append(flat, sub...)
			continue
		}
		flat = append(flat, c)
	}

	var kept []Matcher
	seen := map[string]bool{}
	for _, c := range flat {
		if a, ok := c.(Always); ok {
			if !bool(a) {
				return False // X && ⊥ -> ⊥
			}
			continue // X && ⊤ -> X, drop the ⊤
		}
		key := c.canon()
		if seen[key] {
			continue // idempotence
		}
		seen[key] = true
		kept = append(kept, c)
	}

	// Complementation: X && !X -> ⊥.
	for _, c := range kept {
		if seen[Negate(c).canon()] {
			return False
		}
	}

	// Relational collapse between leaves on the same field.
	var collapsed bool
	kept, collapsed = collapseLeafPairs(kept, true)
	if collapsed {
		return False
	}

	// Absorption: X && (X || Y) -> X.
	kept = absorb(kept, true)

	switch len(kept) {
	case 0:
		return True
	case 1:
		return kept[0]
	default:
		return And(kept)
	}
}

func simplifyAnyOr(children []Matcher) Matcher {
	flat := make([]Matcher, 0, len(children))
	for _, c := range children {
		if sub, ok := c.(Or); ok {
			flat = append(flat, sub...)
			continue
		}
		flat = append(flat, c)
	}

	var kept []Matcher
	seen := map[string]bool{}
	for _, c := range flat {
		if a, ok := c.(Always); ok {
			if bool(a) {
				return True // X || ⊤ -> ⊤
			}
			continue // X || ⊥ -> X
		}
		key := c.canon()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, c)
	}

	for _, c := range kept {
		if seen[Negate(c).canon()] {
			return True // X || !X -> ⊤
		}
	}

	var collapsed bool
	kept, collapsed = collapseLeafPairs(kept, false)
	if collapsed {
		return True
	}

	kept = absorb(kept, false)

	switch len(kept) {
	case 0:
		return False
	case 1:
		return kept[0]
	default:
		return Or(kept)
	}
}

// collapseLeafPairs merges leaves that share a field when a tighter single
// leaf is derivable. collapsedToAbsorbing is true when a pair collapsed to
// the absorbing element (⊥ under conjunction, ⊤ under disjunction); the
// caller maps that back to the right constant since this function doesn't
// know which one applies.
func collapseLeafPairs(ms []Matcher, conj bool) (result []Matcher, collapsedToAbsorbing bool) {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(ms); i++ {
			li, ok1 := ms[i].(Leaf)
			if !ok1 || li.Rel == In {
				continue
			}
			for j := i + 1; j < len(ms); j++ {
				lj, ok2 := ms[j].(Leaf)
				if !ok2 || lj.Rel == In || lj.Field != li.Field {
					continue
				}
				merged, toAbsorbing, ok := collapseTwoLeaves(li, lj, conj)
				if !ok {
					continue
				}
				if toAbsorbing {
					return nil, true
				}
				ms = append(append(append([]Matcher{}, ms[:j]...), ms[j+1:]...))
				ms[i] = merged
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}
	return ms, false
}

// collapseTwoLeaves attempts to merge two same-field leaves under
// conjunction (conj=true) or disjunction (conj=false) semantics. ok is false
// when no collapse rule applies and both leaves must be kept separately.
func collapseTwoLeaves(a, b Leaf, conj bool) (merged Matcher, toAbsorbing bool, ok bool) {
	if conj {
		switch {
		case a.Rel == Eq && b.Rel == Eq:
			if a.Value == b.Value {
				return a, false, true
			}
			return nil, true, true // a==x && a==y (x!=y) -> false
		case a.Rel == Lt && b.Rel == Lt:
			if a.Value < b.Value {
				return a, false, true
			}
			return b, false, true
		case a.Rel == Gt && b.Rel == Gt:
			if a.Value > b.Value {
				return a, false, true
			}
			return b, false, true
		case a.Rel == Le && b.Rel == Le:
			if a.Value < b.Value {
				return a, false, true
			}
			return b, false, true
		case a.Rel == Ge && b.Rel == Ge:
			if a.Value > b.Value {
				return a, false, true
			}
			return b, false, true
		case a.Rel == Eq && b.Rel == Lt:
			if a.Value < b.Value {
				return a, false, true
			}
			return nil, true, true
		case a.Rel == Lt && b.Rel == Eq:
			if b.Value < a.Value {
				return b, false, true
			}
			return nil, true, true
		case a.Rel == Eq && b.Rel == Gt:
			if a.Value > b.Value {
				return a, false, true
			}
			return nil, true, true
		case a.Rel == Gt && b.Rel == Eq:
			if b.Value > a.Value {
				return b, false, true
			}
			return nil, true, true
		case a.Rel == Eq && b.Rel == Ne:
			if a.Value != b.Value {
				return a, false, true
			}
			return nil, true, true
		case a.Rel == Ne && b.Rel == Eq:
			if b.Value != a.Value {
				return b, false, true
			}
			return nil, true, true
		}
		return nil, false, false
	}

	// Disjunction: only the symmetric, unambiguous widenings are collapsed.
	switch {
	case a.Rel == Eq && b.Rel == Eq && a.Value == b.Value:
		return a, false, true
	case a.Rel == Lt && b.Rel == Lt:
		if a.Value > b.Value {
			return a, false, true
		}
		return b, false, true
	case a.Rel == Gt && b.Rel == Gt:
		if a.Value < b.Value {
			return a, false, true
		}
		return b, false, true
	case a.Rel == Le && b.Rel == Le:
		if a.Value > b.Value {
			return a, false, true
		}
		return b, false, true
	case a.Rel == Ge && b.Rel == Ge:
		if a.Value < b.Value {
			return a, false, true
		}
		return b, false, true
	}
	return nil, false, false
}

// absorb removes children subsumed by a sibling literal: in a conjunction,
// X && (X || Y) reduces to X; in a disjunction, X || (X && Y) reduces to X.
func absorb(ms []Matcher, conj bool) []Matcher {
	literals := map[string]bool{}
	for _, m := range ms {
		if !isComposite(m) {
			literals[m.canon()] = true
		}
	}
	if len(literals) == 0 {
		return ms
	}
	var kept []Matcher
	for _, m := range ms {
		if conj {
			if o, ok := m.(Or); ok && containsAny(o, literals) {
				continue
			}
		} else {
			if a, ok := m.(And); ok && containsAny(a, literals) {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}

func isComposite(m Matcher) bool {
	switch m.(type) {
	case And, Or:
		return true
	default:
		return false
	}
}

func containsAny(ms []Matcher, keys map[string]bool) bool {
	for _, m := range ms {
		if keys[m.canon()] {
			return true
		}
	}
	return false
}
