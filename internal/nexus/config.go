package nexus

// Args is the project-argument tuple conditionals evaluate against —
// spec.md's "value-level tuple of compile-time constants supplied at
// composition entry". Go has no compile-time tuple, so this is an ordinary
// map read by predicate closures.
type Args map[string]any

// Builder is a service's append-only contribution accumulator: Add returns
// a new builder (value semantics, matching spec.md's "builder is a value
// type with add(...) returning a new builder"), and Build finalizes the
// accumulated contributions into the service's interface value.
type Builder interface {
	Add(args ...any) Builder
	Build() (any, error)
}

// NestedBuilder is a Builder that itself addresses child builders by tag,
// supporting extend<Path, Args...> paths longer than one element (spec.md
// §4.1 step 2, "recurse into the nested builder using Path[1..]").
type NestedBuilder interface {
	Builder
	Child(tag Tag) (Builder, bool)
	WithChild(tag Tag, child Builder) Builder
}

// Publisher is implemented by a built service value whose interface type
// is pointer-shaped and must be published to a process-wide hook variable
// (spec.md §4.1 step 5, §9 "global mutable state for built values"). Build
// calls Publish once per Build, after every service in the project has
// finished building; there is no separate init step.
type Publisher interface {
	Publish() error
}

// Node is one item of the config tree sum type: Extend, Exports,
// Components, Conditional, or Config (spec.md §3 "Configuration item").
type Node interface{ isNode() }

// Export names one service this subtree defines, seeding an empty builder
// for it. Name is carried alongside Tag purely for diagnostics (spec.md's
// Design Notes: identity is the tag, not the name).
type Export struct {
	Tag  Tag
	Name string
	New  func() Builder
}

// Exports declares that this subtree defines services with the given
// tags.
type Exports struct {
	Items []Export
}

func (Exports) isNode() {}

// Extend adds Args to the builder reached by Path, a non-empty sequence of
// service tags naming a (possibly nested) builder address.
type Extend struct {
	Path []Tag
	Args []any
}

func (Extend) isNode() {}

// Component contributes a config fragment to a project (spec.md's
// GLOSSARY "Component").
type Component interface {
	Config() Node
}

// Components concatenates the configuration trees of each component,
// depth-first, left to right.
type Components struct {
	Items []Component
}

func (Components) isNode() {}

// Conditional makes Body's exports and extensions participate only when
// Pred(args) holds; Name is carried for diagnostics only (spec.md's Design
// Notes: "store the name alongside the tag as an ordinary string — tags
// remain unique per service; equality is by tag identity, not by name").
// Modeled on internal/guards.Check: a single named predicate gating
// participation, generalized from "guard a project's composition entry" to
// "guard a config-tree subtree".
type Conditional struct {
	Name string
	Pred func(Args) bool
	Body Node
}

func (Conditional) isNode() {}

// Config is an ordered composition of items; its effect is the ordered
// effect of its children.
type Config struct {
	Items []Node
}

func (Config) isNode() {}
