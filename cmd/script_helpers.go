package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg"
	"github.com/ngld/daedalus/pkg/buildgraph"
	"github.com/ngld/daedalus/pkg/buildscript"
)

// newLogger builds the logger shared by all subcommands and attaches it to a
// new context.
func newLogger(cmd *cobra.Command) (zerolog.Logger, context.Context) {
	logger := zerolog.New(NewConsoleWriter())
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && !verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx := buildscript.WithLogger(context.Background(), &logger)
	return logger, ctx
}

// loadSpec locates the build script and executes it. Bare script names are
// searched upwards from the working directory, paths are used as passed.
func loadSpec(ctx context.Context, cmd *cobra.Command) (*buildscript.Spec, string, error) {
	scriptName, err := cmd.Flags().GetString("script")
	if err != nil {
		return nil, "", err
	}

	var scriptPath string
	if filepath.Base(scriptName) == scriptName {
		scriptPath, err = pkg.FindBuildScript(scriptName)
	} else {
		scriptPath, err = filepath.Abs(scriptName)
	}
	if err != nil {
		return nil, "", err
	}

	spec, err := buildscript.RunScript(ctx, scriptPath, filepath.Dir(scriptPath))
	if err != nil {
		return nil, "", err
	}

	return spec, scriptPath, nil
}

// splitOverrides separates name=value flag overrides from the remaining
// positional arguments.
func splitOverrides(args []string) ([]string, map[string]bool, error) {
	rest := make([]string, 0)
	overrides := make(map[string]bool)
	for _, part := range args {
		name, value, ok, err := buildscript.ParseOverride(part)
		if err != nil {
			return nil, nil, err
		}

		if ok {
			overrides[name] = value
		} else {
			rest = append(rest, part)
		}
	}

	return rest, overrides, nil
}

// loadConfig merges the declared flag defaults with the args file and the
// given overrides. If no args file was passed, an args.star file next to the
// build script is picked up automatically.
func loadConfig(ctx context.Context, cmd *cobra.Command, spec *buildscript.Spec, scriptPath string, overrides map[string]bool) (buildgraph.Config, error) {
	argsFile, err := cmd.Flags().GetString("args")
	if err != nil {
		return nil, err
	}

	if argsFile == "" {
		candidate := filepath.Join(filepath.Dir(scriptPath), "args.star")
		_, err := os.Stat(candidate)
		if err == nil {
			argsFile = candidate
		} else if !eris.Is(err, os.ErrNotExist) {
			return nil, eris.Wrapf(err, "failed to check %s", candidate)
		}
	}

	fileValues := make(map[string]bool)
	if argsFile != "" {
		fileValues, err = buildscript.LoadArgsFile(ctx, argsFile)
		if err != nil {
			return nil, err
		}
	}

	return spec.ResolveConfig(fileValues, overrides)
}

// realizeFromFlags runs the pipeline shared by most subcommands: execute the
// build script, resolve the configuration and realize the target graph.
func realizeFromFlags(ctx context.Context, cmd *cobra.Command, overrides map[string]bool) (*buildscript.Spec, *buildgraph.Graph, error) {
	spec, scriptPath, err := loadSpec(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	config, err := loadConfig(ctx, cmd, spec, scriptPath, overrides)
	if err != nil {
		return nil, nil, err
	}

	graph, err := spec.Builder.Realize(config)
	if err != nil {
		return nil, nil, err
	}

	return spec, graph, nil
}
