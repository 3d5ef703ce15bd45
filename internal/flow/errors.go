package flow

import (
	"fmt"
	"strings"
)

// MissingStepError reports a step that appears as an edge endpoint but was
// never Star-ed anywhere in the composed expression (spec.md §7
// MissingFlowStep).
type MissingStepError struct{ Names []string }

func (e *MissingStepError) Error() string {
	return fmt.Sprintf("flow: step(s) used in an edge but never mentioned with *: %s", strings.Join(e.Names, ", "))
}

// DuplicateStepError reports a step Star-ed more than once (spec.md §7
// DuplicateFlowStep).
type DuplicateStepError struct{ Names []string }

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("flow: step(s) mentioned with * more than once: %s", strings.Join(e.Names, ", "))
}

// WeakerEdgePredicateError reports an edge whose predicate doesn't imply
// one or both endpoints' predicates (spec.md §7 WeakerEdgePredicate).
type WeakerEdgePredicateError struct {
	From, To   string
	MissingFor []string // name of From, To, or both, whose predicate the edge's does not imply
}

func (e *WeakerEdgePredicateError) Error() string {
	return fmt.Sprintf("flow: edge %s -> %s predicate does not imply the predicate of: %s",
		e.From, e.To, strings.Join(e.MissingFor, ", "))
}

// CycleError reports that the partial order could not be linearized
// (spec.md §7 FlowCycle).
type CycleError struct{ Remaining []string }

func (e *CycleError) Error() string {
	return fmt.Sprintf("flow: cycle in flow graph, unresolved steps: %s", strings.Join(e.Remaining, ", "))
}
