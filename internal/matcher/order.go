package matcher

// Less defines a strict weak ordering over matcher values, used to make
// canonicalization total and diagnostics stable (spec.md §4.4 "Ordering").
// It compares the same canon() keys Simplify/SumOfProducts use for
// structural equality, so Less(a,b) and Less(b,a) both false implies a and b
// are the same matcher shape.
func Less(a, b Matcher) bool {
	return a.canon() < b.canon()
}

// Equivalent reports whether two matchers have identical canonical form
// (the ordered-canonicalization equivalence spec.md's implies() rule 2
// relies on).
func Equivalent(a, b Matcher) bool {
	return a.canon() == b.canon()
}
