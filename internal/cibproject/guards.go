package cibproject

import (
	"context"

	"github.com/cib-project/cib/internal/guards"
)

// PersonNameRequired ensures the project has a non-empty person name before
// composing the daily routine flows — without it the flow actions have
// nothing to address.
var PersonNameRequired = guards.NewCheck("person_name_required", func(_ context.Context, args guards.Args, _ bool) guards.Finding {
	name, _ := args["person_name"].(string)
	if name != "" {
		return guards.OK("person_name_required")
	}
	return guards.Deny("person_name_required", guards.HardBlock,
		"no person name configured; the daily routine actions have nothing to address",
		"set person.name in the project's TOML config, or CIBDEMO_PERSON_NAME",
	)
})

// NotificationsPriorityInRange is a SoftBlock: an out-of-range priority
// almost certainly means a typo in the config. With force the project still
// composes, and the notify center is built with the out-of-range priority
// as given; notifications are not disabled.
var NotificationsPriorityInRange = guards.NewCheck("notifications_priority_in_range", func(_ context.Context, args guards.Args, _ bool) guards.Finding {
	enabled, _ := args["notifications_enabled"].(bool)
	if !enabled {
		return guards.OK("notifications_priority_in_range")
	}
	priority, _ := args["notifications_priority"].(int)
	if priority >= 0 && priority <= 3 {
		return guards.OK("notifications_priority_in_range")
	}
	return guards.Deny("notifications_priority_in_range", guards.SoftBlock,
		"notifications.priority is out of the 0-3 range",
		"fix notifications.priority, set notifications.enabled = false, or use force=true to compose anyway",
	)
})

// ComponentsPresent is a Suggestion: a project with zero components
// composes to an empty nexus, which is legal but is almost never what was
// intended.
var ComponentsPresent = guards.NewCheck("components_present", func(_ context.Context, args guards.Args, _ bool) guards.Finding {
	count, _ := args["component_count"].(int)
	if count > 0 {
		return guards.OK("components_present")
	}
	return guards.Deny("components_present", guards.Suggestion,
		"no components registered for this project",
		"add at least one component to Components.Items",
	)
})

// DefaultChecks is the preflight set cmd/cibdemo runs before every Build.
var DefaultChecks = []guards.Check{
	PersonNameRequired,
	NotificationsPriorityInRange,
	ComponentsPresent,
}

// Preflight runs DefaultChecks against args, returning the aggregated
// report. Callers should refuse to Build when report.Blocked.
func Preflight(ctx context.Context, args *ProjectArgs, componentCount int, force bool) *guards.Report {
	preflightArgs := guards.Args{
		"person_name":            args.Person.Name,
		"notifications_enabled":  args.Notifications.Enabled,
		"notifications_priority": args.Notifications.Priority,
		"component_count":        componentCount,
	}
	return guards.Evaluate(ctx, preflightArgs, force, DefaultChecks)
}
