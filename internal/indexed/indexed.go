// Package indexed implements the indexed message handler builder: a fixed
// tuple of (matcher, action) callbacks compiled into a per-field
// {value -> candidate bitset} index plus a default bitset for callbacks
// unconstrained on that field, so dispatch costs
// O(#indexed fields + #candidates) instead of O(#callbacks).
//
// Grounded on original_source/include/msg/indexed_builder.hpp and
// include/msg/Handler.hpp's matcher/description contract, with the
// lookup structure itself factored out to internal/indexed/lookup per
// spec.md's explicit "pseudo_pext_lookup is a pluggable black box"
// treatment.
package indexed

import (
	"log/slog"

	"github.com/cib-project/cib/internal/indexed/bitset"
	"github.com/cib-project/cib/internal/matcher"
)

// Action is a callback's runtime behavior. extra carries the builder's
// declared extra argument values, threaded through to every invoked
// callback alongside the message (spec.md §4.3 "Extra arguments").
type Action func(msg matcher.Extractor, extra ...any)

// Callback is one entry of the builder's input tuple.
type Callback struct {
	Name    string
	Matcher matcher.Matcher
	Action  Action
}

// FieldIndex is one indexed field's compiled lookup plus default bitset.
type FieldIndex struct {
	Field   string
	Lookup  FieldLookup
	Default bitset.Set
}

// FieldLookup is the per-field value->bitset map a FieldIndex queries;
// satisfied by internal/indexed/lookup.Index and internal/indexed/rle's
// index type.
type FieldLookup interface {
	Get(v int64) (bitset.Set, bool)
}

// UnsatisfiableMatcherWarning reports a callback whose matcher simplifies
// to Always(false) — statically unreachable (spec.md §8 scenario 4) — and
// is therefore a candidate for static removal. It is a warning returned
// alongside a successful Build, not a build failure.
type UnsatisfiableMatcherWarning struct {
	Callback string
}

func (w UnsatisfiableMatcherWarning) String() string {
	return "indexed: callback " + w.Callback + " can never match (matcher simplifies to false)"
}

// Handler is the built, read-only dispatcher: the ordered callback array
// plus the compiled field indices.
type Handler struct {
	callbacks []Callback
	fields    []FieldIndex
	logger    *slog.Logger
}

// Dispatch evaluates msg against every field index to narrow the candidate
// set, then performs the mandatory residual matcher check on each surviving
// candidate (spec.md §9: "the spec mandates the residual check" — never
// skipped, since the index alone cannot account for non-indexed fields or
// non-equality relations). Candidates are visited in ascending declaration
// order, and extra is forwarded to every invoked callback's Action.
func (h *Handler) Dispatch(msg matcher.Extractor, extra ...any) bool {
	candidates := bitset.AllOnes(len(h.callbacks))
	for _, fi := range h.fields {
		bits := fi.Default
		if v, ok := msg.FieldValue(fi.Field); ok {
			if found, ok := fi.Lookup.Get(v); ok {
				bits = found.Or(fi.Default)
			}
		}
		candidates = candidates.And(bits)
	}

	matched := false
	ones := candidates.Ones()
	for _, i := range ones {
		cb := h.callbacks[i]
		if cb.Matcher.Eval(msg) {
			cb.Action(msg, extra...)
			matched = true
		}
	}

	if !matched && h.logger != nil {
		h.logger.Info("indexed: unmatched message")
		for _, i := range ones {
			cb := h.callbacks[i]
			h.logger.Info("indexed: candidate mismatch", "callback", cb.Name, "why", cb.Matcher.DescribeMatch(msg))
		}
	}
	return matched
}

// Callbacks returns the handler's callback tuple in declaration order, for
// diagnostics.
func (h *Handler) Callbacks() []Callback { return h.callbacks }
