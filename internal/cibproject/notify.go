package cibproject

import (
	"fmt"
	"log/slog"

	"github.com/cib-project/cib/internal/indexed"
	"github.com/cib-project/cib/internal/matcher"
	"github.com/cib-project/cib/internal/nexus"
)

// NotifyCenterTag identifies the indexed-dispatch notification service —
// the demo's second example service, alongside the two flow-graph routines,
// showing internal/indexed composed through nexus the same way
// internal/flow is.
var NotifyCenterTag = nexus.TagOf[*NotifyCenter]()

// Notification is the message type the notify center dispatches on: a
// (kind, priority) pair. kind and priority are arbitrary small integers a
// real project would back with named constants; the demo only needs two
// fields to exercise indexed dispatch's per-field index narrowing.
type Notification struct {
	Kind     int64
	Priority int64
}

// FieldValue implements matcher.Extractor.
func (n Notification) FieldValue(name string) (matcher.Value, bool) {
	switch name {
	case "kind":
		return n.Kind, true
	case "priority":
		return n.Priority, true
	default:
		return 0, false
	}
}

const (
	KindWeather int64 = iota
	KindCalendar
	KindHealth
)

// NotifyCenter is the built service value: a read-only indexed.Handler
// plus the build-time unsatisfiable-matcher warnings emitted alongside it
// (spec.md §8 scenario 4 — a warning, not a build failure).
type NotifyCenter struct {
	*indexed.Handler
	Warnings []indexed.UnsatisfiableMatcherWarning
}

// NotifyBuilder accumulates indexed.Callback values contributed by
// extend<NotifyCenterTag>(callback) and compiles them into a NotifyCenter
// on Build, indexed on "kind" and "priority".
type NotifyBuilder struct {
	callbacks []indexed.Callback
	logger    *slog.Logger
}

// NewNotifyBuilderFactory returns an Export.New constructor for the notify
// center, logging unmatched messages through logger.
func NewNotifyBuilderFactory(logger *slog.Logger) func() nexus.Builder {
	return func() nexus.Builder { return &NotifyBuilder{logger: logger} }
}

func (b *NotifyBuilder) Add(args ...any) nexus.Builder {
	callbacks := append([]indexed.Callback(nil), b.callbacks...)
	for _, a := range args {
		callbacks = append(callbacks, a.(indexed.Callback))
	}
	return &NotifyBuilder{callbacks: callbacks, logger: b.logger}
}

func (b *NotifyBuilder) Build() (any, error) {
	builder := indexed.NewBuilder("kind", "priority")
	if b.logger != nil {
		builder = builder.WithLogger(b.logger)
	}
	for _, cb := range b.callbacks {
		builder = builder.Add(cb)
	}
	handler, warnings, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &NotifyCenter{Handler: handler, Warnings: warnings}, nil
}

// NotifyComponent exports the notify center and registers the demo's three
// callbacks: a weather alert (any priority), a calendar reminder (priority
// >= MinPriority), and a health nudge gated to priority == MinPriority exactly, so
// the example exercises both equality and inequality matcher leaves.
type NotifyComponent struct {
	Logger      *slog.Logger
	MinPriority int64
}

func (c NotifyComponent) Config() nexus.Node {
	minPriority := matcher.Value(c.MinPriority)
	return nexus.Config{Items: []nexus.Node{
		nexus.Exports{Items: []nexus.Export{
			{Tag: NotifyCenterTag, Name: "notify-center", New: NewNotifyBuilderFactory(c.Logger)},
		}},
		nexus.Extend{Path: []nexus.Tag{NotifyCenterTag}, Args: []any{
			indexed.Callback{
				Name:    "weather-alert",
				Matcher: matcher.EqualTo("kind", KindWeather),
				Action: func(msg matcher.Extractor, extra ...any) {
					fmt.Println("weather alert dispatched")
				},
			},
		}},
		nexus.Extend{Path: []nexus.Tag{NotifyCenterTag}, Args: []any{
			indexed.Callback{
				Name:    "calendar-reminder",
				Matcher: matcher.AndOf(matcher.EqualTo("kind", KindCalendar), matcher.GreaterEqual("priority", minPriority)),
				Action: func(msg matcher.Extractor, extra ...any) {
					fmt.Println("calendar reminder dispatched")
				},
			},
		}},
		nexus.Extend{Path: []nexus.Tag{NotifyCenterTag}, Args: []any{
			indexed.Callback{
				Name:    "health-nudge",
				Matcher: matcher.AndOf(matcher.EqualTo("kind", KindHealth), matcher.EqualTo("priority", minPriority)),
				Action: func(msg matcher.Extractor, extra ...any) {
					fmt.Println("health nudge dispatched")
				},
			},
		}},
	}}
}
