// Package buildscript executes the Starlark scripts that declare build
// targets and flags. Scripts run exactly once per invocation and are
// independent of the build configuration: a script can't observe flag values,
// it can only attach conditions to targets. The collected declarations are
// realized later through buildgraph for one concrete configuration.
package buildscript

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

// FlagOption describes a flag declared through declare_flag().
type FlagOption struct {
	Default bool
	Help    string
}

// Spec holds everything a build script declared.
type Spec struct {
	Builder *buildgraph.Builder
	Flags   map[string]FlagOption
	// FlagOrder lists the flag names in declaration order.
	FlagOrder []string
}

type parserCtx struct {
	ctx         context.Context
	spec        *Spec
	yamlCache   map[string]interface{}
	filepath    string
	projectRoot string
}

func getCtx(thread *starlark.Thread) *parserCtx {
	return thread.Local("parserCtx").(*parserCtx)
}

var flagNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// * Builtin functions

func declareTarget(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, kind buildgraph.Kind) (starlark.Value, error) {
	var name string
	var srcs *starlark.List
	var data *starlark.List
	var deps *starlark.List
	var testOnly bool
	var cond string

	var err error
	if kind == buildgraph.Group {
		// groups bundle data and dependencies, they never carry sources
		err = starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "data?", &data,
			"deps?", &deps, "testonly?", &testOnly, "condition?", &cond)
	} else {
		err = starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "srcs?", &srcs,
			"data?", &data, "deps?", &deps, "testonly?", &testOnly, "condition?", &cond)
	}
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	target := &buildgraph.Target{
		Name:      name,
		Kind:      kind,
		TestOnly:  testOnly,
		Condition: cond,
	}

	target.Sources, err = pathList(ctx, srcs, "srcs")
	if err != nil {
		return nil, err
	}

	target.Data, err = pathList(ctx, data, "data")
	if err != nil {
		return nil, err
	}

	target.Deps, err = starlarkIterable2stringSlice(deps, "deps")
	if err != nil {
		return nil, err
	}

	err = ctx.spec.Builder.Declare(target)
	if err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func starSourceSet(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return declareTarget(thread, fn, args, kwargs, buildgraph.SourceSet)
}

func starExecutable(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return declareTarget(thread, fn, args, kwargs, buildgraph.Executable)
}

func starGroup(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return declareTarget(thread, fn, args, kwargs, buildgraph.Group)
}

func starDeclareFlag(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var defaultValue bool
	var help string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &defaultValue, "help?", &help)
	if err != nil {
		return nil, err
	}

	if !flagNamePattern.MatchString(name) {
		return nil, eris.Errorf("%q is not a valid flag name; conditions couldn't reference it", name)
	}

	ctx := getCtx(thread)
	if _, present := ctx.spec.Flags[name]; present {
		return nil, eris.Errorf("the flag %s has already been declared", name)
	}

	ctx.spec.Flags[name] = FlagOption{
		Default: defaultValue,
		Help:    help,
	}
	ctx.spec.FlagOrder = append(ctx.spec.FlagOrder, name)

	return starlark.None, nil
}

func starRequireVersion(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var constraint string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &constraint)
	if err != nil {
		return nil, err
	}

	parsed, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse the version constraint %s", constraint)
	}

	current, err := semver.NewVersion(Version)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse the tool version %s", Version)
	}

	if !parsed.Check(current) {
		return nil, eris.Errorf("this script requires a daedalus version matching %s but this is %s", constraint, Version)
	}

	return starlark.None, nil
}

// RunScript executes a build script and returns the declared targets and
// flags. Conditions are not evaluated here; that happens once the collected
// declarations are realized for a concrete configuration.
func RunScript(ctx context.Context, filename, projectRoot string) (*Spec, error) {
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	filename, err = filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	spec := &Spec{
		Builder: buildgraph.NewBuilder(),
		Flags:   map[string]FlagOption{},
	}

	builtins := starlark.StringDict{
		"source_set":      starlark.NewBuiltin("source_set", starSourceSet),
		"executable":      starlark.NewBuiltin("executable", starExecutable),
		"group":           starlark.NewBuiltin("group", starGroup),
		"declare_flag":    starlark.NewBuiltin("declare_flag", starDeclareFlag),
		"require_version": starlark.NewBuiltin("require_version", starRequireVersion),
		"read_yaml":       starlark.NewBuiltin("read_yaml", readYaml),
		"info":            starlark.NewBuiltin("info", starInfo),
		"warn":            starlark.NewBuiltin("warn", starWarn),
	}

	thread := &starlark.Thread{
		Name: "main",
		Print: func(thread *starlark.Thread, msg string) {
			log(ctx).Info().Str("thread", thread.Name).Msg(msg)
		},
	}
	threadCtx := parserCtx{
		ctx:         ctx,
		spec:        spec,
		yamlCache:   map[string]interface{}{},
		filepath:    filename,
		projectRoot: projectRoot,
	}
	thread.SetLocal("parserCtx", &threadCtx)

	script, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", filename)
	}

	log(ctx).Debug().Msgf("Executing build script %s", filename)
	_, err = starlark.ExecFile(thread, simplifyPath(&threadCtx, filename), script, builtins)
	if err != nil {
		if evalError, ok := err.(*starlark.EvalError); ok {
			return nil, eris.Wrapf(evalError, "failed to execute %s:\n%s", simplifyPath(&threadCtx, filename), evalError.Backtrace())
		}
		return nil, eris.Wrapf(err, "failed to execute %s", simplifyPath(&threadCtx, filename))
	}

	return spec, nil
}
