package filterlist

import (
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePreservesLinesVerbatim(t *testing.T) {
	content := "# Bug 123456: flaky on bots\n-SpawnMultiProcessTest.SpawnAsNew\nScopedAllowBlocking.*\n\n-All/Thing.First/0\n"

	entries, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"# Bug 123456: flaky on bots",
		"-SpawnMultiProcessTest.SpawnAsNew",
		"ScopedAllowBlocking.*",
		"",
		"-All/Thing.First/0",
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("entries should be preserved exactly as written, got %#v", entries)
	}
}

func TestParseWindowsLineBreaks(t *testing.T) {
	entries, err := Parse(strings.NewReader("-First.Test\r\nSecond.Test\r\n"))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(entries, []string{"-First.Test", "Second.Test"}) {
		t.Errorf("unexpected entries: %#v", entries)
	}
}

func TestParseMissingFinalNewline(t *testing.T) {
	entries, err := Parse(strings.NewReader("One.Test\nTwo.Test"))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(entries, []string{"One.Test", "Two.Test"}) {
		t.Errorf("unexpected entries: %#v", entries)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tests.filter")
	err := ioutil.WriteFile(path, []byte("-Flaky.Test\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(entries, []string{"-Flaky.Test"}) {
		t.Errorf("unexpected entries: %#v", entries)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.filter"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
