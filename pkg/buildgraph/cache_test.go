package buildgraph

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCacheRoundtrip(t *testing.T) {
	b := NewBuilder()
	mustDeclare(t, b, &Target{Name: "base", Kind: SourceSet, Sources: []string{"//base/base.cc"}})
	mustDeclare(t, b, &Target{
		Name:      "tests",
		Kind:      Executable,
		TestOnly:  true,
		Deps:      []string{"base"},
		Data:      []string{"//filters/tests.filter"},
		Condition: "include_tests",
	})

	graph, err := b.Realize(Config{"include_tests": true})
	if err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "graph.cache")
	err = WriteCache(file, graph)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadCache(file)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(loaded.Targets(), graph.Targets()) {
		t.Error("the loaded graph should match the stored one")
	}

	if !reflect.DeepEqual(loaded.Config(), graph.Config()) {
		t.Error("the loaded configuration should match")
	}

	// The loaded graph has to answer queries just like the original.
	names := targetNames(loaded.Deps("tests"))
	if !reflect.DeepEqual(names, []string{"base"}) {
		t.Errorf("unexpected deps after loading: %v", names)
	}
}

func TestReadCacheMissingFile(t *testing.T) {
	_, err := ReadCache(filepath.Join(t.TempDir(), "nope.cache"))
	if err == nil {
		t.Fatal("expected an error for a missing cache file")
	}
}
