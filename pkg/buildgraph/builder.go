package buildgraph

import (
	"github.com/rotisserie/eris"

	"github.com/ngld/daedalus/pkg/condition"
)

// Builder collects target declarations. The declaration order is preserved
// and becomes the target order of every graph realized from this builder.
type Builder struct {
	targets []*Target
	byName  map[string]*Target
}

func NewBuilder() *Builder {
	return &Builder{byName: map[string]*Target{}}
}

// Declare registers a target. It validates the name, the kind and the
// condition syntax and fails with a DuplicateNameError if the name is already
// taken. The passed target is copied; later modifications through t don't
// affect the builder.
func (b *Builder) Declare(t *Target) error {
	err := t.validate()
	if err != nil {
		return err
	}

	if _, present := b.byName[t.Name]; present {
		return DuplicateNameError{Name: t.Name}
	}

	copied := t.clone()
	b.targets = append(b.targets, copied)
	b.byName[t.Name] = copied
	return nil
}

// Targets returns the declared targets in declaration order. Callers must not
// modify the result.
func (b *Builder) Targets() []*Target {
	return b.targets
}

// Lookup returns the declared target with the passed name or nil.
func (b *Builder) Lookup(name string) *Target {
	return b.byName[name]
}

// Realize evaluates every declared condition against cfg and builds the graph
// containing exactly the included targets. All dependency edges are resolved
// against that subset; an edge pointing outside of it fails the whole
// operation with an UnresolvedDependencyError and cycles fail it with a
// CyclicDependencyError. The result is an immutable snapshot: realizing the
// same declarations with the same configuration again yields a structurally
// identical graph.
func (b *Builder) Realize(cfg Config) (*Graph, error) {
	included := make([]*Target, 0, len(b.targets))
	byName := make(map[string]*Target, len(b.targets))

	for _, t := range b.targets {
		if t.Condition != "" {
			pass, err := condition.Evaluate(t.Condition, cfg)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to evaluate the condition of target %q", t.Name)
			}

			if !pass {
				continue
			}
		}

		copied := t.clone()
		included = append(included, copied)
		byName[copied.Name] = copied
	}

	// Edges of excluded targets are intentionally never checked; an excluded
	// target contributes nothing to the graph.
	for _, t := range included {
		for _, dep := range t.Deps {
			if _, present := byName[dep]; !present {
				_, declared := b.byName[dep]
				return nil, UnresolvedDependencyError{From: t.Name, To: dep, Excluded: declared}
			}
		}
	}

	graph := &Graph{targets: included, byName: byName, config: cfg.clone()}
	chain := graph.findCycle()
	if chain != nil {
		return nil, CyclicDependencyError{Chain: chain}
	}

	return graph, nil
}
