package buildscript

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

// LoadArgsFile executes a Starlark args file and returns its boolean globals
// as flag values. Args files use the same language as build scripts so
// configurations can live next to the scripts they configure, but they only
// assign values:
//
//	is_win = True
//	use_goma = False
func LoadArgsFile(ctx context.Context, filename string) (map[string]bool, error) {
	thread := &starlark.Thread{
		Name: "args",
		Print: func(thread *starlark.Thread, msg string) {
			log(ctx).Info().Str("thread", thread.Name).Msg(msg)
		},
	}

	script, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", filename)
	}

	log(ctx).Debug().Msgf("Reading flag values from %s", filename)
	globals, err := starlark.ExecFile(thread, filepath.Base(filename), script, starlark.StringDict{})
	if err != nil {
		if evalError, ok := err.(*starlark.EvalError); ok {
			return nil, eris.Wrapf(evalError, "failed to execute %s:\n%s", filename, evalError.Backtrace())
		}
		return nil, eris.Wrapf(err, "failed to execute %s", filename)
	}

	values := make(map[string]bool, len(globals))
	for name, value := range globals {
		boolValue, ok := value.(starlark.Bool)
		if !ok {
			return nil, eris.Errorf("%s assigns a %s to %s but flag values have to be True or False", filename, value.Type(), name)
		}

		values[name] = bool(boolValue)
	}

	return values, nil
}

// ParseOverride splits a name=value argument from the command line. ok is
// false if arg contains no "=" at all.
func ParseOverride(arg string) (name string, value bool, ok bool, err error) {
	idx := strings.Index(arg, "=")
	if idx == -1 {
		return "", false, false, nil
	}

	name = arg[:idx]
	switch strings.ToLower(arg[idx+1:]) {
	case "true", "1", "yes", "on":
		return name, true, true, nil
	case "false", "0", "no", "off":
		return name, false, true, nil
	default:
		return "", false, false, eris.Errorf("invalid value %q for flag %s, expected true or false", arg[idx+1:], name)
	}
}

// ResolveConfig combines the declared flag defaults with the values from an
// args file and command line overrides; later sources win. Both maps may be
// nil. Values for flags the script never declared are rejected.
func (s *Spec) ResolveConfig(fileValues, overrides map[string]bool) (buildgraph.Config, error) {
	cfg := make(buildgraph.Config, len(s.Flags))
	for name, option := range s.Flags {
		cfg[name] = option.Default
	}

	for _, source := range []map[string]bool{fileValues, overrides} {
		for name, value := range source {
			if _, declared := s.Flags[name]; !declared {
				return nil, eris.Errorf("the flag %s has never been declared; add a declare_flag() call to the build script", name)
			}

			cfg[name] = value
		}
	}

	return cfg, nil
}
