package buildgraph

import (
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/ngld/daedalus/pkg/condition"
)

// Kind describes what a target produces.
type Kind string

const (
	// SourceSet is a collection of source files which dependent targets
	// compile in directly.
	SourceSet Kind = "source_set"
	// Executable is a linked binary.
	Executable Kind = "executable"
	// Group bundles data files and dependencies without producing anything
	// itself.
	Group Kind = "group"
)

func (k Kind) valid() bool {
	return k == SourceSet || k == Executable || k == Group
}

// Config assigns a value to every flag of a build configuration.
type Config map[string]bool

func (c Config) clone() Config {
	copied := make(Config, len(c))
	for name, value := range c {
		copied[name] = value
	}
	return copied
}

// Target is a single declared build target. Sources, Data and Deps keep their
// declaration order. Deps contains plain target names.
type Target struct {
	Name     string
	Kind     Kind
	Sources  []string
	Data     []string
	Deps     []string
	TestOnly bool
	// Condition holds the raw predicate source. Targets with an empty
	// condition are part of every configuration.
	Condition string
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func (t *Target) validate() error {
	if !namePattern.MatchString(t.Name) {
		return eris.Errorf("invalid target name %q", t.Name)
	}

	if !t.Kind.valid() {
		return eris.Errorf("target %s has the unknown kind %q", t.Name, t.Kind)
	}

	if t.Condition != "" {
		_, err := condition.Parse(t.Condition)
		if err != nil {
			return eris.Wrapf(err, "target %s", t.Name)
		}
	}

	return nil
}

// clone returns a copy that doesn't share slices with t.
func (t *Target) clone() *Target {
	copied := *t
	copied.Sources = append([]string(nil), t.Sources...)
	copied.Data = append([]string(nil), t.Data...)
	copied.Deps = append([]string(nil), t.Deps...)
	return &copied
}
