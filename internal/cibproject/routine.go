package cibproject

import (
	"fmt"

	"github.com/cib-project/cib/internal/flow"
	"github.com/cib-project/cib/internal/nexus"
)

// MorningRoutineTag and EveningRoutineTag identify the two flow-graph
// services every self-care/food/dress-up/commute component extends —
// grounded on original_source/examples/flow_daily_routine/main.cpp's
// Morning_Routine_t/Evening_Routine_t.
var (
	MorningRoutineTag = nexus.TagOf[MorningRoutine]()
	EveningRoutineTag = nexus.TagOf[EveningRoutine]()
)

func logStep(name, message string) *flow.Node {
	return flow.NewAction(name, func() { fmt.Println(message) })
}

// SelfCareComponent contributes the wake/exercise/bathe/relax/sleep steps
// shared by both routines.
type SelfCareComponent struct {
	WakeUp, Exercise, TakeBath, Relax, GoToBed *flow.Node
}

// NewSelfCareComponent builds the component's step nodes once, so the
// *flow.Node pointers it hands to other components for ordering stay
// stable across Config().
func NewSelfCareComponent() *SelfCareComponent {
	return &SelfCareComponent{
		WakeUp:   logStep("WakeUp", "Wake up at 6:00 AM"),
		Exercise: logStep("Exercise", "Gym activities"),
		TakeBath: logStep("TakeBath", "Take a bath"),
		Relax:    logStep("Relax", "Relax before dinner"),
		GoToBed:  logStep("GoToBed", "Go to bed at 10:00 PM"),
	}
}

func (c *SelfCareComponent) Config() nexus.Node {
	return nexus.Config{Items: []nexus.Node{
		nexus.Extend{Path: []nexus.Tag{MorningRoutineTag}, Args: []any{
			flow.Before(flow.Before(flow.Star(c.WakeUp), flow.Star(c.Exercise)), flow.Star(c.TakeBath)),
		}},
		nexus.Extend{Path: []nexus.Tag{EveningRoutineTag}, Args: []any{
			flow.Before(flow.Before(flow.Before(flow.Star(c.Exercise), flow.Star(c.TakeBath)), flow.Star(c.Relax)), flow.Star(c.GoToBed)),
		}},
	}}
}

// FoodComponent contributes breakfast and dinner. It cross-references
// SelfCareComponent's nodes for ordering (flow.Step) without re-declaring
// them (flow.Star) — each step is Star-ed exactly once anywhere in a
// routine's merged expression (spec.md §4.2's mentioned-set rule), by
// whichever component owns it.
type FoodComponent struct {
	Breakfast, Dinner *flow.Node
	selfCare          *SelfCareComponent
}

func NewFoodComponent(selfCare *SelfCareComponent) *FoodComponent {
	return &FoodComponent{
		Breakfast: logStep("Breakfast", "Have a healthy breakfast"),
		Dinner:    logStep("Dinner", "Have an early dinner"),
		selfCare:  selfCare,
	}
}

func (c *FoodComponent) Config() nexus.Node {
	return nexus.Config{Items: []nexus.Node{
		nexus.Extend{Path: []nexus.Tag{MorningRoutineTag}, Args: []any{
			flow.Before(flow.Step(c.selfCare.TakeBath), flow.Star(c.Breakfast)),
		}},
		nexus.Extend{Path: []nexus.Tag{EveningRoutineTag}, Args: []any{
			flow.Before(flow.Before(flow.Step(c.selfCare.Relax), flow.Star(c.Dinner)), flow.Step(c.selfCare.GoToBed)),
		}},
	}}
}

// DressUpComponent contributes the wardrobe-change steps that gate
// exercise and office attendance.
type DressUpComponent struct {
	ReadyForExercise, ReadyForWork *flow.Node
	selfCare                       *SelfCareComponent
	food                           *FoodComponent
}

func NewDressUpComponent(selfCare *SelfCareComponent, food *FoodComponent) *DressUpComponent {
	return &DressUpComponent{
		ReadyForExercise: logStep("GetReadyForExercise", "Put on sports wear"),
		ReadyForWork:     logStep("GetReadyToWork", "Put on office wear"),
		selfCare:         selfCare,
		food:             food,
	}
}

func (c *DressUpComponent) Config() nexus.Node {
	morning := flow.Before(flow.Step(c.selfCare.WakeUp), flow.Star(c.ReadyForExercise))
	morning = flow.Before(morning, flow.Step(c.selfCare.Exercise))
	morning = flow.Before(morning, flow.Step(c.selfCare.TakeBath))
	morning = flow.Before(morning, flow.Star(c.ReadyForWork))
	morning = flow.Before(morning, flow.Step(c.food.Breakfast))

	evening := flow.Before(flow.Star(c.ReadyForExercise), flow.Step(c.selfCare.Exercise))

	return nexus.Config{Items: []nexus.Node{
		nexus.Extend{Path: []nexus.Tag{MorningRoutineTag}, Args: []any{morning}},
		nexus.Extend{Path: []nexus.Tag{EveningRoutineTag}, Args: []any{evening}},
	}}
}

// CommuteComponent contributes the office commute steps. GoToOffice only
// runs on a work weekday (spec.md §3's predicate-gated step, here driven by
// the person.work_weekday project argument via Conditional rather than a
// per-node predicate, since the whole commute leg is skippable).
type CommuteComponent struct {
	GoToOffice, ReturnHome *flow.Node
	dressUp                *DressUpComponent
	food                   *FoodComponent
}

func NewCommuteComponent(dressUp *DressUpComponent, food *FoodComponent) *CommuteComponent {
	return &CommuteComponent{
		GoToOffice: logStep("GoToOffice", "Commute to the office"),
		ReturnHome: logStep("ReturnHome", "Commute back home"),
		dressUp:    dressUp,
		food:       food,
	}
}

func (c *CommuteComponent) Config() nexus.Node {
	return nexus.Config{Items: []nexus.Node{
		nexus.Extend{Path: []nexus.Tag{MorningRoutineTag}, Args: []any{
			flow.Before(flow.Step(c.food.Breakfast), flow.Star(c.GoToOffice)),
		}},
		nexus.Extend{Path: []nexus.Tag{EveningRoutineTag}, Args: []any{
			flow.Before(flow.Star(c.ReturnHome), flow.Step(c.dressUp.ReadyForExercise)),
		}},
	}}
}

// DailyRoutineComponent exports both routine services — the driver a
// top-level main loop action would call into (cmd/cibdemo's run subcommand
// plays this role directly, rather than via a MainLoop service, since
// spec.md's core library carries no CLI of its own).
type DailyRoutineComponent struct{}

func (DailyRoutineComponent) Config() nexus.Node {
	return nexus.Exports{Items: []nexus.Export{
		{
			Tag:  MorningRoutineTag,
			Name: "morning-routine",
			New:  NewFlowBuilderFactory(func(g *flow.Graph) any { return MorningRoutine{Graph: g} }),
		},
		{
			Tag:  EveningRoutineTag,
			Name: "evening-routine",
			New:  NewFlowBuilderFactory(func(g *flow.Graph) any { return EveningRoutine{Graph: g} }),
		},
	}}
}
