package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg"
	"github.com/ngld/daedalus/pkg/buildscript"
)

func getProgressBar(length int64, desc string) *progressbar.ProgressBar {
	if os.Getenv("CI") == "true" {
		return progressbar.NewOptions64(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.Default(length, desc)
}

var checkCmd = &cobra.Command{
	Use:   "check [name=value...]",
	Short: "Verifies the realized target graph",
	Long: `Realizes the target graph for the given configuration and verifies the
constraints that realization alone doesn't enforce: a target that isn't
marked testonly must not depend on one that is. With --files, the declared
sources and data entries are also resolved (including glob patterns) and
checked on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		if len(rest) > 0 {
			logger.Fatal().Msgf("Unexpected argument %s", rest[0])
		}

		checkFiles, err := cmd.Flags().GetBool("files")
		if err != nil {
			return err
		}

		pkg.PrintTask("Executing the build script")
		spec, scriptPath, err := loadSpec(ctx, cmd)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load the build script")
		}

		pkg.PrintTask("Realizing the target graph")
		config, err := loadConfig(ctx, cmd, spec, scriptPath, overrides)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to resolve the build configuration")
		}

		graph, err := spec.Builder.Realize(config)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to realize the target graph")
		}

		pkg.PrintTask("Verifying testonly constraints")
		issues := 0
		for _, tgt := range graph.Targets() {
			if tgt.TestOnly {
				continue
			}

			for _, dep := range graph.Deps(tgt.Name) {
				if dep.TestOnly {
					pkg.PrintError(fmt.Sprintf("%s depends on %s which is marked testonly", tgt.Name, dep.Name))
					issues++
				}
			}
		}

		if checkFiles {
			pkg.PrintTask("Checking declared files")
			projectRoot := filepath.Dir(scriptPath)
			targets := graph.Targets()
			bar := getProgressBar(int64(len(targets)), "     checking")

			fileCount := 0
			missing := make([]string, 0)
			for _, tgt := range targets {
				paths := append(append([]string(nil), tgt.Sources...), tgt.Data...)
				resolved, err := buildscript.ResolvePatterns(projectRoot, paths)
				if err != nil {
					logger.Fatal().Err(err).Str("target", tgt.Name).Msg("Failed to resolve the declared files")
				}

				fileCount += len(resolved)
				for _, item := range resolved {
					_, err := os.Stat(item)
					if err != nil {
						missing = append(missing, fmt.Sprintf("%s declares %s which doesn't exist", tgt.Name, item))
					}
				}

				bar.Add(1)
			}
			bar.Finish()

			pkg.PrintSubtask(fmt.Sprintf("%d files checked", fileCount))
			for _, msg := range missing {
				pkg.PrintError(msg)
			}
			issues += len(missing)
		}

		if issues > 0 {
			logger.Fatal().Msgf("Found %d issues in %d targets", issues, len(graph.Targets()))
		}

		logger.Info().Msgf("Checked %d targets, no issues found", len(graph.Targets()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("files", false, "also verify that the declared sources and data files exist")
}
