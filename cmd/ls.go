package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

var lsCmd = &cobra.Command{
	Use:   "ls [out dir] [name=value...]",
	Short: "Lists the realized targets",
	Long: `Lists the targets contained in the realized graph. If an output directory
from a previous gen run is passed, the cached graph from that directory is
used. Otherwise the build script is executed and realized from scratch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		var graph *buildgraph.Graph
		if len(rest) > 0 {
			if len(overrides) > 0 {
				logger.Warn().Msg("Ignoring the flag overrides, the cached graph was realized with its own configuration")
			}

			cachePath := filepath.Join(rest[0], "graph.cache")
			graph, err = buildgraph.ReadCache(cachePath)
			if err != nil {
				logger.Fatal().Err(err).Msgf("Failed to read %s, run gen first", cachePath)
			}
		} else {
			_, graph, err = realizeFromFlags(ctx, cmd, overrides)
			if err != nil {
				logger.Fatal().Err(err).Msg("Failed to realize the target graph")
			}
		}

		targets := graph.Targets()
		maxNameLen := 0
		sortedNames := make([]string, 0, len(targets))
		for _, tgt := range targets {
			if len(tgt.Name) > maxNameLen {
				maxNameLen = len(tgt.Name)
			}

			sortedNames = append(sortedNames, tgt.Name)
		}

		sort.Strings(sortedNames)

		lineFmt := fmt.Sprintf(" * %%-%ds %%s\n", maxNameLen+3)
		for _, name := range sortedNames {
			tgt := graph.Lookup(name)
			desc := string(tgt.Kind)
			if tgt.TestOnly {
				desc += " (testonly)"
			}

			fmt.Printf(lineFmt, name+":", desc)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
