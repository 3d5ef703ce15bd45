package cibproject

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cib-project/cib/internal/guards"
	"github.com/cib-project/cib/internal/nexus"
)

// Build composes the daily-routine demo project against args: the
// self-care/food/dress-up components always participate; the commute
// component participates only on a work weekday (nexus.Conditional keyed
// on the person.work_weekday project argument); the notify center
// participates only when notifications are enabled. Preflight checks run
// first, and a blocked report is returned as an error before nexus.Build
// is ever invoked.
func Build(ctx context.Context, args *ProjectArgs, logger *slog.Logger, force bool) (*nexus.Nexus, *guards.Report, error) {
	componentCount := 4 // self-care, food, dress-up, daily-routine always participate
	if args.Person.WorkWeekday {
		componentCount++
	}
	if args.Notifications.Enabled {
		componentCount++
	}

	report := Preflight(ctx, args, componentCount, force)
	if report.Blocked {
		return nil, report, fmt.Errorf("project preflight blocked: %s", report.BlockMessage())
	}

	tree := Config(args, logger)
	n, err := nexus.Build(tree, args.ToNexusArgs())
	if err != nil {
		return nil, report, err
	}
	return n, report, nil
}

// Config assembles the project's config tree without building it — used
// directly by cmd/cibdemo's "graph" and "describe" subcommands, which want
// to inspect the tree (or a tag's resulting graph) without necessarily
// running preflight or erroring out on a blocked report.
func Config(args *ProjectArgs, logger *slog.Logger) nexus.Node {
	selfCare := NewSelfCareComponent()
	food := NewFoodComponent(selfCare)
	dressUp := NewDressUpComponent(selfCare, food)

	items := []nexus.Node{
		DailyRoutineComponent{}.Config(),
		selfCare.Config(),
		food.Config(),
		dressUp.Config(),
	}

	items = append(items, nexus.Conditional{
		Name: "work-weekday",
		Pred: func(a nexus.Args) bool {
			v, _ := a["work_weekday"].(bool)
			return v
		},
		Body: NewCommuteComponent(dressUp, food).Config(),
	})

	items = append(items, nexus.Conditional{
		Name: "notifications-enabled",
		Pred: func(a nexus.Args) bool {
			v, _ := a["notifications_enabled"].(bool)
			return v
		},
		Body: NotifyComponent{
			Logger:      logger,
			MinPriority: int64(args.Notifications.Priority),
		}.Config(),
	})

	return nexus.Config{Items: items}
}
