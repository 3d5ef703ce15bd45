// Package guards implements the project preflight check system: composable
// checks that run against a project's arguments before internal/nexus.Build
// composes it. A Check's Level determines how the system responds:
//
//   - HardBlock: composition must not proceed.
//   - SoftBlock: composition is refused by default but can be overridden by force.
//   - Warning: composition proceeds, with an advisory message.
//   - Suggestion: composition proceeds, with an optional recommendation.
//
// A Check reads from an Args tuple — the same shape as nexus.Args, so a
// project's preflight checks and its nexus.Conditional predicates share one
// argument model rather than each inventing their own. Evaluate runs a set
// of Checks and folds their Findings into a Report. nexus.Conditional is the
// same "named predicate gates a subtree" idea applied inside the config
// tree rather than before it.
package guards

import (
	"context"
	"fmt"
	"strings"
)

// Level classifies how strongly a failed Check constrains composition.
type Level int

const (
	// Suggestion is advisory — composition proceeds, message included in the report.
	Suggestion Level = iota
	// Warning is advisory — composition proceeds, message included in the report.
	Warning
	// SoftBlock stops composition unless the caller passes force=true.
	SoftBlock
	// HardBlock stops composition unconditionally.
	HardBlock
)

func (l Level) String() string {
	switch l {
	case Suggestion:
		return "SUGGESTION"
	case Warning:
		return "WARNING"
	case SoftBlock:
		return "SOFT_BLOCK"
	case HardBlock:
		return "HARD_BLOCK"
	default:
		return "UNKNOWN"
	}
}

// Finding is what one Check reports about a project's arguments.
type Finding struct {
	Check   string
	Passed  bool
	Level   Level
	Message string
	Remedy  string
}

// Args is the value-level tuple a Check inspects, keyed the same way a
// project populates nexus.Args for its Conditional predicates.
type Args map[string]any

// Check is one preflight rule.
type Check interface {
	Name() string
	Run(ctx context.Context, args Args, force bool) Finding
}

// CheckFunc adapts a plain function into a Check.
type CheckFunc struct {
	name string
	run  func(ctx context.Context, args Args, force bool) Finding
}

// NewCheck builds a Check from a function.
func NewCheck(name string, run func(ctx context.Context, args Args, force bool) Finding) *CheckFunc {
	return &CheckFunc{name: name, run: run}
}

func (c *CheckFunc) Name() string { return c.name }
func (c *CheckFunc) Run(ctx context.Context, args Args, force bool) Finding {
	return c.run(ctx, args, force)
}

// OK reports that check found nothing wrong.
func OK(check string) Finding {
	return Finding{Check: check, Passed: true}
}

// Deny reports that check failed at the given level.
func Deny(check string, level Level, message, remedy string) Finding {
	return Finding{Check: check, Passed: false, Level: level, Message: message, Remedy: remedy}
}

// Report aggregates every Finding produced by one Evaluate call.
type Report struct {
	// Blocked is true if any HardBlock fired, or any SoftBlock fired without force.
	Blocked  bool
	Findings []Finding
}

func (r *Report) at(level Level) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Passed && f.Level == level {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) HardBlocks() []Finding  { return r.at(HardBlock) }
func (r *Report) SoftBlocks() []Finding  { return r.at(SoftBlock) }
func (r *Report) Warnings() []Finding    { return r.at(Warning) }
func (r *Report) Suggestions() []Finding { return r.at(Suggestion) }

// BlockMessage renders why composition was blocked, or "" if it wasn't.
func (r *Report) BlockMessage() string {
	if !r.Blocked {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("composition blocked:\n")

	for _, f := range r.HardBlocks() {
		sb.WriteString(fmt.Sprintf("\n[HARD_BLOCK] %s: %s", f.Check, f.Message))
		if f.Remedy != "" {
			sb.WriteString(fmt.Sprintf("\n  remedy: %s", f.Remedy))
		}
	}

	softBlocks := r.SoftBlocks()
	for _, f := range softBlocks {
		sb.WriteString(fmt.Sprintf("\n[SOFT_BLOCK] %s: %s", f.Check, f.Message))
		if f.Remedy != "" {
			sb.WriteString(fmt.Sprintf("\n  remedy: %s", f.Remedy))
		}
	}

	if len(softBlocks) > 0 {
		sb.WriteString("\n\npass force=true to override soft blocks.")
	}

	return sb.String()
}

// AdvisoryMessage renders warnings and suggestions, or "" if there are none.
func (r *Report) AdvisoryMessage() string {
	warnings := r.Warnings()
	suggestions := r.Suggestions()
	if len(warnings) == 0 && len(suggestions) == 0 {
		return ""
	}

	var sb strings.Builder
	if len(warnings) > 0 {
		sb.WriteString("warnings:\n")
		for _, f := range warnings {
			sb.WriteString(fmt.Sprintf("  - %s: %s", f.Check, f.Message))
			if f.Remedy != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", f.Remedy))
			}
			sb.WriteString("\n")
		}
	}
	if len(suggestions) > 0 {
		sb.WriteString("suggestions:\n")
		for _, f := range suggestions {
			sb.WriteString(fmt.Sprintf("  - %s: %s", f.Check, f.Message))
			if f.Remedy != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", f.Remedy))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Evaluate runs every check against args and folds the results into a
// Report. A SoftBlock only blocks when force is false.
func Evaluate(ctx context.Context, args Args, force bool, checks []Check) *Report {
	report := &Report{}

	for _, c := range checks {
		finding := c.Run(ctx, args, force)
		report.Findings = append(report.Findings, finding)

		if !finding.Passed {
			switch finding.Level {
			case HardBlock:
				report.Blocked = true
			case SoftBlock:
				if !force {
					report.Blocked = true
				}
			}
		}
	}

	return report
}
