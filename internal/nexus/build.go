package nexus

import "sort"

type slot struct {
	name    string
	builder Builder
}

// Nexus is the composed, read-only registry of built service values — the
// Go analogue of spec.md's "service<Tag>" statically stored slots. Service
// lookups after Build are pure reads.
type Nexus struct {
	built map[Tag]any
	order []Tag
	names map[Tag]string
}

// Service returns the built value for tag, if the project exported it.
func (n *Nexus) Service(tag Tag) (any, bool) {
	v, ok := n.built[tag]
	return v, ok
}

// Service is the generic convenience form of Nexus.Service: it looks up
// TagOf[T]() and type-asserts the result to T.
func Service[T any](n *Nexus) (T, bool) {
	var zero T
	v, ok := n.Service(TagOf[T]())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Tags returns every exported tag in export-discovery order, for
// diagnostics.
func (n *Nexus) Tags() []Tag { return append([]Tag(nil), n.order...) }

// Build walks root's config tree against args and produces a Nexus:
// export collection, extension collection, conditional pruning, components
// inlining, then the per-service build pass (spec.md §4.1 steps 1-5).
func Build(root Node, args Args) (*Nexus, error) {
	slots := map[Tag]*slot{}
	var order []Tag

	if err := collectExports(root, args, slots, &order); err != nil {
		return nil, err
	}
	if err := collectExtensions(root, args, slots); err != nil {
		return nil, err
	}

	built := make(map[Tag]any, len(order))
	names := make(map[Tag]string, len(order))
	for _, tag := range order {
		s := slots[tag]
		names[tag] = s.name
		val, err := s.builder.Build()
		if err != nil {
			return nil, err
		}
		built[tag] = val
	}

	for _, tag := range order {
		if p, ok := built[tag].(Publisher); ok {
			if err := p.Publish(); err != nil {
				return nil, err
			}
		}
	}

	return &Nexus{built: built, order: order, names: names}, nil
}

func collectExports(n Node, args Args, slots map[Tag]*slot, order *[]Tag) error {
	switch t := n.(type) {
	case Exports:
		for _, e := range t.Items {
			if _, exists := slots[e.Tag]; exists {
				return &DuplicateExportError{Tag: e.Tag, Name: e.Name}
			}
			slots[e.Tag] = &slot{name: e.Name, builder: e.New()}
			*order = append(*order, e.Tag)
		}
	case Extend:
		// handled in the extension pass
	case Components:
		for _, c := range t.Items {
			if err := collectExports(c.Config(), args, slots, order); err != nil {
				return err
			}
		}
	case Conditional:
		if t.Pred(args) {
			return collectExports(t.Body, args, slots, order)
		}
	case Config:
		for _, item := range t.Items {
			if err := collectExports(item, args, slots, order); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectExtensions(n Node, args Args, slots map[Tag]*slot) error {
	switch t := n.(type) {
	case Extend:
		return applyExtend(t, slots)
	case Exports:
		// handled in the export pass
	case Components:
		for _, c := range t.Items {
			if err := collectExtensions(c.Config(), args, slots); err != nil {
				return err
			}
		}
	case Conditional:
		if t.Pred(args) {
			return collectExtensions(t.Body, args, slots)
		}
	case Config:
		for _, item := range t.Items {
			if err := collectExtensions(item, args, slots); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyExtend(e Extend, slots map[Tag]*slot) error {
	if len(e.Path) == 0 {
		return nil
	}
	target := e.Path[0]
	s, ok := slots[target]
	if !ok {
		return &MissingExportError{Tag: target}
	}

	if len(e.Path) == 1 {
		s.builder = s.builder.Add(e.Args...)
		return nil
	}

	nb, ok := s.builder.(NestedBuilder)
	if !ok {
		return &UnnestableExtendError{Tag: target, Name: s.name}
	}
	updated, err := extendNested(nb, e.Path[1], e.Path[2:], e.Args)
	if err != nil {
		return err
	}
	s.builder = updated
	return nil
}

// extendNested descends one path element at a time, rebuilding each
// ancestor builder (value semantics — Add/WithChild always return a new
// Builder) on the way back up.
func extendNested(parent NestedBuilder, childTag Tag, rest []Tag, args []any) (Builder, error) {
	child, ok := parent.Child(childTag)
	if !ok {
		return nil, &MissingExportError{Tag: childTag}
	}

	if len(rest) == 0 {
		return parent.WithChild(childTag, child.Add(args...)), nil
	}

	nb, ok := child.(NestedBuilder)
	if !ok {
		return nil, &UnnestableExtendError{Tag: childTag}
	}
	updatedChild, err := extendNested(nb, rest[0], rest[1:], args)
	if err != nil {
		return nil, err
	}
	return parent.WithChild(childTag, updatedChild), nil
}

// SortedNames returns every exported service's diagnostic name, sorted —
// for diagnostics dumps such as cmd/cibdemo's "describe" subcommand.
func (n *Nexus) SortedNames() []string {
	names := make([]string, 0, len(n.order))
	for _, t := range n.order {
		names = append(names, n.names[t])
	}
	sort.Strings(names)
	return names
}
