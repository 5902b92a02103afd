package buildgraph

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// SnapshotTarget is the JSON form of a single realized target.
type SnapshotTarget struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	TestOnly bool     `json:"testonly,omitempty"`
	Sources  []string `json:"srcs,omitempty"`
	Data     []string `json:"data,omitempty"`
	Deps     []string `json:"deps,omitempty"`
}

// Snapshot is the serialized form of a realized graph. It's the hand-off
// format for orchestrators that consume the graph without linking this
// package. Targets keep their declaration order.
type Snapshot struct {
	Version string           `json:"daedalus_version"`
	ID      string           `json:"build_id"`
	Args    Config           `json:"args"`
	Targets []SnapshotTarget `json:"targets"`
}

// Snapshot converts the graph. id should be unique per generation.
func (g *Graph) Snapshot(version, id string) Snapshot {
	targets := make([]SnapshotTarget, len(g.targets))
	for idx, t := range g.targets {
		targets[idx] = SnapshotTarget{
			Name:     t.Name,
			Type:     string(t.Kind),
			TestOnly: t.TestOnly,
			Sources:  t.Sources,
			Data:     t.Data,
			Deps:     t.Deps,
		}
	}

	return Snapshot{
		Version: version,
		ID:      id,
		Args:    g.config,
		Targets: targets,
	}
}

// WriteJSON writes the indented JSON snapshot to w.
func (g *Graph) WriteJSON(w io.Writer, version, id string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(g.Snapshot(version, id))
	if err != nil {
		return eris.Wrap(err, "failed to encode the build graph")
	}
	return nil
}
