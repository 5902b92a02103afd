package buildscript

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := ioutil.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScript(t *testing.T) {
	root := t.TempDir()
	err := os.MkdirAll(filepath.Join(root, "testing"), 0700)
	if err != nil {
		t.Fatal(err)
	}

	script := writeFile(t, filepath.Join(root, "testing"), "BUILD.star", `
require_version(">= 0.1.0")

declare_flag("is_mac", help = "Building for macOS")
declare_flag("is_win", help = "Building for Windows")
declare_flag("include_perf", default = True, help = "Include the perf harness")

source_set(
    "test_support",
    srcs = ["test_support.cc", "//base/helpers.cc"],
)

executable(
    "run_all_unittests",
    srcs = ["run_all_unittests.cc"],
    deps = ["test_support"],
    testonly = True,
)

group(
    "perf_data",
    data = ["scripts/", "//filters/perf.filter"],
    deps = ["run_all_unittests"],
    testonly = True,
    condition = "include_perf and (is_mac or is_win)",
)
`)

	spec, err := RunScript(context.Background(), script, root)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(spec.FlagOrder, []string{"is_mac", "is_win", "include_perf"}) {
		t.Errorf("unexpected flag order: %v", spec.FlagOrder)
	}
	if !spec.Flags["include_perf"].Default {
		t.Error("include_perf should default to true")
	}
	if spec.Flags["is_mac"].Help != "Building for macOS" {
		t.Errorf("wrong help text: %q", spec.Flags["is_mac"].Help)
	}

	targets := spec.Builder.Targets()
	names := make([]string, len(targets))
	for idx, target := range targets {
		names[idx] = target.Name
	}
	if !reflect.DeepEqual(names, []string{"test_support", "run_all_unittests", "perf_data"}) {
		t.Fatalf("unexpected targets: %v", names)
	}

	support := spec.Builder.Lookup("test_support")
	if !reflect.DeepEqual(support.Sources, []string{"//testing/test_support.cc", "//base/helpers.cc"}) {
		t.Errorf("unexpected sources: %v", support.Sources)
	}

	perf := spec.Builder.Lookup("perf_data")
	if perf.Kind != buildgraph.Group || !perf.TestOnly {
		t.Errorf("unexpected target: %+v", perf)
	}
	if !reflect.DeepEqual(perf.Data, []string{"//testing/scripts/", "//filters/perf.filter"}) {
		t.Errorf("unexpected data: %v", perf.Data)
	}
	if perf.Condition != "include_perf and (is_mac or is_win)" {
		t.Errorf("unexpected condition: %q", perf.Condition)
	}

	// The declarations have to realize end to end.
	cfg, err := spec.ResolveConfig(nil, map[string]bool{"is_win": true})
	if err != nil {
		t.Fatal(err)
	}

	graph, err := spec.Builder.Realize(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if graph.Lookup("perf_data") == nil {
		t.Error("perf_data should be part of this configuration")
	}
}

func TestRunScriptDuplicateTarget(t *testing.T) {
	root := t.TempDir()
	script := writeFile(t, root, "BUILD.star", `
source_set("foo", srcs = ["a.cc"])
source_set("foo", srcs = ["b.cc"])
`)

	_, err := RunScript(context.Background(), script, root)
	if err == nil {
		t.Fatal("the duplicate declaration should have failed the script")
	}

	if !strings.Contains(err.Error(), "already been declared") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunScriptGroupRejectsSources(t *testing.T) {
	root := t.TempDir()
	script := writeFile(t, root, "BUILD.star", "group(\"data\", srcs = [\"a.txt\"])\n")

	_, err := RunScript(context.Background(), script, root)
	if err == nil {
		t.Fatal("groups don't accept srcs")
	}

	if !strings.Contains(err.Error(), "srcs") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunScriptInvalidCondition(t *testing.T) {
	root := t.TempDir()
	script := writeFile(t, root, "BUILD.star", "source_set(\"foo\", condition = \"is_mac or\")\n")

	_, err := RunScript(context.Background(), script, root)
	if err == nil {
		t.Fatal("unparsable conditions should fail at declaration time")
	}

	if !strings.Contains(err.Error(), "condition") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunScriptPathOutsideRoot(t *testing.T) {
	root := t.TempDir()
	script := writeFile(t, root, "BUILD.star", "source_set(\"foo\", srcs = [\"../../outside.cc\"])\n")

	_, err := RunScript(context.Background(), script, root)
	if err == nil {
		t.Fatal("paths outside of the project root should be rejected")
	}

	if !strings.Contains(err.Error(), "outside of the project root") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunScriptReadYaml(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "meta.yml", "defaults:\n  use_gpu: true\nnames:\n  - alpha\n  - beta\n")
	script := writeFile(t, root, "BUILD.star", `
declare_flag("use_gpu", default = read_yaml("meta.yml", "defaults.use_gpu", False))
declare_flag("missing", default = read_yaml("meta.yml", "defaults.nope", False))
info("second name: %s" % read_yaml("meta.yml", "names.1", "none"))
`)

	spec, err := RunScript(context.Background(), script, root)
	if err != nil {
		t.Fatal(err)
	}

	if !spec.Flags["use_gpu"].Default {
		t.Error("use_gpu should pick up its default from meta.yml")
	}
	if spec.Flags["missing"].Default {
		t.Error("missing keys should fall back to the passed default")
	}
}

func TestRunScriptRequireVersion(t *testing.T) {
	root := t.TempDir()
	script := writeFile(t, root, "BUILD.star", "require_version(\">= 99.0\")\n")

	_, err := RunScript(context.Background(), script, root)
	if err == nil {
		t.Fatal("the version constraint can't be satisfied")
	}

	if !strings.Contains(err.Error(), "requires a daedalus version") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunScriptMissingFile(t *testing.T) {
	root := t.TempDir()

	_, err := RunScript(context.Background(), filepath.Join(root, "BUILD.star"), root)
	if err == nil {
		t.Fatal("expected an error for a missing script")
	}
}
