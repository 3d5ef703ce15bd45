package nexus

import "fmt"

// MissingExportError reports an extend<Path,...> whose leading tag is not
// exported anywhere in the project (spec.md §4.1 "Error conditions").
type MissingExportError struct {
	Tag  Tag
	Name string
}

func (e *MissingExportError) Error() string {
	return fmt.Sprintf("nexus: extend targets tag %s (%s), which is not exported by any reachable node", e.Tag, e.Name)
}

// DuplicateExportError reports a tag exported more than once across the
// project (spec.md §4.1 "Error conditions").
type DuplicateExportError struct {
	Tag  Tag
	Name string
}

func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("nexus: tag %s (%s) is exported more than once", e.Tag, e.Name)
}

// UnnestableExtendError reports a Path of length > 1 whose target builder
// does not implement NestedBuilder.
type UnnestableExtendError struct {
	Tag  Tag
	Name string
}

func (e *UnnestableExtendError) Error() string {
	return fmt.Sprintf("nexus: extend path continues past tag %s (%s), but its builder does not support nested children", e.Tag, e.Name)
}
