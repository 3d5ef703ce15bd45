// Package nexus implements the composition engine: it walks a project's
// declarative config tree, discovers exported services and the extensions
// contributed to them, prunes subtrees whose conditional predicate fails
// against the supplied project arguments, and drives each service's
// builder to a finalized, immutable value.
//
// Grounded on original_source/include/cib/core.hpp and
// include/cib/detail/*; the tag-keyed slot registry is patterned on the
// teacher's internal/mcp registry.go (Register/Get/List), generalized from
// string-keyed tools to reflect.Type-keyed services per spec.md's Design
// Notes fallback for "type-level string constants" (a name travels
// alongside each tag for diagnostics, but identity is the tag itself).
package nexus

import "reflect"

// Tag is a service's identity. Two tags are the same service iff they are
// the same reflect.Type — the Go analogue of the original's empty unique
// C++ type used purely for type-level lookup.
type Tag = reflect.Type

// TagOf returns the Tag identifying service interface type T.
func TagOf[T any]() Tag {
	return reflect.TypeOf((*T)(nil)).Elem()
}
