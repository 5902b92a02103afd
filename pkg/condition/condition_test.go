package condition

import (
	"errors"
	"reflect"
	"testing"
)

func TestEvaluate(t *testing.T) {
	flags := map[string]bool{
		"is_mac":   false,
		"is_win":   true,
		"is_debug": false,
	}

	testCases := []struct {
		src      string
		expected bool
	}{
		{"is_win", true},
		{"is_mac", false},
		{"not is_mac", true},
		{"is_mac and is_win", false},
		{"is_mac or is_win", true},
		{"not (is_mac or is_debug)", true},
		{"is_win and not is_debug", true},
		{"(is_mac or is_win) and not is_debug", true},
		// "and" binds stronger than "or"
		{"is_mac or is_win and is_debug", false},
		{"True", true},
		{"False or is_win", true},
		{"not False", true},
	}

	for _, c := range testCases {
		result, err := Evaluate(c.src, flags)
		if err != nil {
			t.Errorf("Evaluate(%q) failed: %v", c.src, err)
			continue
		}

		if result != c.expected {
			t.Errorf("Evaluate(%q) returned %v, expected %v", c.src, result, c.expected)
		}
	}
}

func TestEvaluateUnknownFlag(t *testing.T) {
	// is_linux has to be reported even though is_mac alone already decides
	// the result.
	_, err := Evaluate("is_mac or is_linux", map[string]bool{"is_mac": true})
	if err == nil {
		t.Fatal("expected an error for a flag that is missing from the configuration")
	}

	var flagErr UnknownFlagError
	if !errors.As(err, &flagErr) {
		t.Fatalf("expected an UnknownFlagError, got %v", err)
	}

	if flagErr.Flag != "is_linux" {
		t.Errorf("wrong flag reported: %q", flagErr.Flag)
	}
}

func TestEvaluateEmptyConfiguration(t *testing.T) {
	result, err := Evaluate("True or not False", map[string]bool{})
	if err != nil {
		t.Fatalf("condition without flags should evaluate against an empty configuration: %v", err)
	}

	if !result {
		t.Error("expected true")
	}
}

func TestParseRejectsUnsupportedExpressions(t *testing.T) {
	invalid := []string{
		"is_mac + is_win",
		"defined(\"is_mac\")",
		"is_mac or",
		"1",
		"\"is_mac\"",
		"[is_mac]",
		"is_mac if is_win else is_debug",
		"-is_mac",
	}

	for _, src := range invalid {
		_, err := Parse(src)
		if err == nil {
			t.Errorf("Parse(%q) should have failed", src)
		}
	}
}

func TestPredicateFlags(t *testing.T) {
	pred, err := Parse("is_mac or (is_win and not is_mac) or use_goma")
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"is_mac", "is_win", "use_goma"}
	if !reflect.DeepEqual(pred.Flags(), expected) {
		t.Errorf("got %v, expected %v", pred.Flags(), expected)
	}

	if pred.String() != "is_mac or (is_win and not is_mac) or use_goma" {
		t.Errorf("String() should return the original source, got %q", pred.String())
	}
}
