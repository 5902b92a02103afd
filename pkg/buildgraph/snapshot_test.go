package buildgraph

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshot(t *testing.T) {
	b := NewBuilder()
	mustDeclare(t, b, &Target{Name: "base", Kind: SourceSet, Sources: []string{"//base/base.cc"}})
	mustDeclare(t, b, &Target{Name: "tools", Kind: Group, Deps: []string{"base"}})

	graph, err := b.Realize(Config{"is_debug": true})
	if err != nil {
		t.Fatal(err)
	}

	snapshot := graph.Snapshot("1.2.3", "test-build-id")
	if snapshot.Version != "1.2.3" || snapshot.ID != "test-build-id" {
		t.Errorf("wrong metadata: %+v", snapshot)
	}

	if len(snapshot.Targets) != 2 || snapshot.Targets[0].Name != "base" || snapshot.Targets[1].Name != "tools" {
		t.Errorf("targets out of order: %+v", snapshot.Targets)
	}

	if snapshot.Targets[1].Type != "group" {
		t.Errorf("wrong type: %q", snapshot.Targets[1].Type)
	}

	var buffer bytes.Buffer
	err = graph.WriteJSON(&buffer, "1.2.3", "test-build-id")
	if err != nil {
		t.Fatal(err)
	}

	// Empty fields stay out of the serialized form.
	if strings.Contains(buffer.String(), "testonly") {
		t.Error("testonly should be omitted for non-test targets")
	}

	var decoded Snapshot
	err = json.Unmarshal(buffer.Bytes(), &decoded)
	if err != nil {
		t.Fatal(err)
	}

	if !decoded.Args["is_debug"] {
		t.Error("the configuration should be part of the snapshot")
	}

	if len(decoded.Targets) != 2 || decoded.Targets[1].Deps[0] != "base" {
		t.Errorf("unexpected decoded snapshot: %+v", decoded)
	}
}
