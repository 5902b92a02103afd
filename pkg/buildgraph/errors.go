package buildgraph

import (
	"fmt"
	"strings"
)

// DuplicateNameError indicates that a target was declared under a name which
// is already taken. Names are unique across the whole declaration set, even
// if the conditions of the two targets could never both be true.
type DuplicateNameError struct {
	Name string
}

var _ error = (*DuplicateNameError)(nil)

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("A target named %q has already been declared.", e.Name)
}

// UnresolvedDependencyError indicates that a dependency edge doesn't resolve
// inside the realized graph. Excluded tells whether the missing target was
// declared but dropped by its condition.
type UnresolvedDependencyError struct {
	From     string
	To       string
	Excluded bool
}

var _ error = (*UnresolvedDependencyError)(nil)

func (e UnresolvedDependencyError) Error() string {
	if e.Excluded {
		return fmt.Sprintf("Target %q depends on %q which is excluded from this configuration by its condition.", e.From, e.To)
	}
	return fmt.Sprintf("Target %q depends on %q which has never been declared.", e.From, e.To)
}

// CyclicDependencyError indicates that the declared dependencies loop back on
// themselves. Chain lists the involved targets; the first and last entry are
// the same.
type CyclicDependencyError struct {
	Chain []string
}

var _ error = (*CyclicDependencyError)(nil)

func (e CyclicDependencyError) Error() string {
	return fmt.Sprintf("The dependencies of target %q form a cycle: %s.", e.Chain[0], strings.Join(e.Chain, " -> "))
}
