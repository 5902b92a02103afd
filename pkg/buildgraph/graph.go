package buildgraph

// Graph is a realized target graph. It never changes once built; realize the
// builder again whenever the configuration changes.
type Graph struct {
	targets []*Target
	byName  map[string]*Target
	config  Config
}

// Targets returns the realized targets in declaration order. Callers must not
// modify the result.
func (g *Graph) Targets() []*Target {
	return g.targets
}

// Config returns a copy of the configuration this graph was realized for.
func (g *Graph) Config() Config {
	return g.config.clone()
}

// Lookup returns the realized target with the passed name or nil.
func (g *Graph) Lookup(name string) *Target {
	return g.byName[name]
}

// Deps returns the direct dependencies of the named target in declaration
// order of the edges.
func (g *Graph) Deps(name string) []*Target {
	t := g.byName[name]
	if t == nil {
		return nil
	}

	result := make([]*Target, len(t.Deps))
	for idx, dep := range t.Deps {
		result[idx] = g.byName[dep]
	}
	return result
}

// Dependents returns the targets that directly depend on the named target,
// in declaration order.
func (g *Graph) Dependents(name string) []*Target {
	if g.byName[name] == nil {
		return nil
	}

	var result []*Target
	for _, t := range g.targets {
		for _, dep := range t.Deps {
			if dep == name {
				result = append(result, t)
				break
			}
		}
	}
	return result
}

// DepClosure returns everything the named target depends on, directly or
// transitively, with dependencies listed before their dependents. The target
// itself is not part of the result.
func (g *Graph) DepClosure(name string) []*Target {
	root := g.byName[name]
	if root == nil {
		return nil
	}

	var result []*Target
	visited := map[string]bool{name: true}

	var visit func(t *Target)
	visit = func(t *Target) {
		for _, dep := range t.Deps {
			if visited[dep] {
				continue
			}

			visited[dep] = true
			depTarget := g.byName[dep]
			visit(depTarget)
			result = append(result, depTarget)
		}
	}

	visit(root)
	return result
}

// RefClosure returns everything that depends on the named target, directly or
// transitively, in declaration order. The target itself is not part of the
// result.
func (g *Graph) RefClosure(name string) []*Target {
	if g.byName[name] == nil {
		return nil
	}

	inClosure := map[string]bool{name: true}
	var result []*Target

	// Declarations may reference targets that are declared later, so a single
	// pass over the list isn't enough. Sweep until nothing changes.
	for {
		added := false
		for _, t := range g.targets {
			if inClosure[t.Name] {
				continue
			}

			for _, dep := range t.Deps {
				if inClosure[dep] {
					inClosure[t.Name] = true
					added = true
					break
				}
			}
		}

		if !added {
			break
		}
	}

	for _, t := range g.targets {
		if t.Name != name && inClosure[t.Name] {
			result = append(result, t)
		}
	}
	return result
}

// DataClosure returns every data path the named target needs at runtime: the
// data of its whole dependency closure followed by its own, without
// duplicates.
func (g *Graph) DataClosure(name string) []string {
	root := g.byName[name]
	if root == nil {
		return nil
	}

	var result []string
	seen := map[string]bool{}
	appendData := func(t *Target) {
		for _, path := range t.Data {
			if !seen[path] {
				seen[path] = true
				result = append(result, path)
			}
		}
	}

	for _, t := range g.DepClosure(name) {
		appendData(t)
	}
	appendData(root)
	return result
}

// TopoSort returns all targets ordered so that every target comes after its
// dependencies. Declaration order breaks ties, making the result
// deterministic.
func (g *Graph) TopoSort() []*Target {
	var result []*Target
	visited := map[string]bool{}

	var visit func(t *Target)
	visit = func(t *Target) {
		if visited[t.Name] {
			return
		}

		visited[t.Name] = true
		for _, dep := range t.Deps {
			visit(g.byName[dep])
		}
		result = append(result, t)
	}

	for _, t := range g.targets {
		visit(t)
	}
	return result
}

// findCycle returns a dependency chain that loops back on itself or nil if
// the graph is acyclic. The first and last entry of the chain are identical.
func (g *Graph) findCycle() []string {
	const (
		inProgress = 1
		done       = 2
	)
	state := map[string]int{}

	var visit func(t *Target, trail []string) []string
	visit = func(t *Target, trail []string) []string {
		state[t.Name] = inProgress
		trail = append(trail, t.Name)

		for _, dep := range t.Deps {
			switch state[dep] {
			case done:
				continue
			case inProgress:
				start := 0
				for idx, name := range trail {
					if name == dep {
						start = idx
						break
					}
				}
				return append(trail[start:], dep)
			default:
				chain := visit(g.byName[dep], trail)
				if chain != nil {
					return chain
				}
			}
		}

		state[t.Name] = done
		return nil
	}

	for _, t := range g.targets {
		if state[t.Name] == 0 {
			chain := visit(t, nil)
			if chain != nil {
				return chain
			}
		}
	}
	return nil
}
