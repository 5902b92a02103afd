package cmd

import (
	"os"
	"path/filepath"

	"github.com/aidarkhanov/nanoid"
	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/buildgraph"
	"github.com/ngld/daedalus/pkg/buildscript"
)

var genCmd = &cobra.Command{
	Use:   "gen <out dir> [name=value...]",
	Short: "Realizes the target graph and writes it to the given directory",
	Long: `Executes the build script, resolves the build configuration and realizes the
target graph. The result is written to <out dir>/graph.json (for external
consumers) and <out dir>/graph.cache (for other daedalus commands).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		if len(rest) != 1 {
			logger.Fatal().Msg("Expected exactly one output directory")
		}
		outDir := rest[0]

		spec, graph, err := realizeFromFlags(ctx, cmd, overrides)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to realize the target graph")
		}

		err = os.MkdirAll(outDir, 0770)
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to create %s", outDir)
		}

		jsonPath := filepath.Join(outDir, "graph.json")
		f, err := os.Create(jsonPath)
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to create %s", jsonPath)
		}

		err = graph.WriteJSON(f, buildscript.Version, nanoid.New())
		if err == nil {
			err = f.Close()
		} else {
			f.Close()
		}
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to write %s", jsonPath)
		}

		cachePath := filepath.Join(outDir, "graph.cache")
		err = buildgraph.WriteCache(cachePath, graph)
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to write %s", cachePath)
		}

		declared := len(spec.Builder.Targets())
		realized := len(graph.Targets())
		logger.Info().Msgf("Realized %d of %d declared targets (%d excluded), wrote %s", realized, declared, declared-realized, jsonPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
}
