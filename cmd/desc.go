package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var descCmd = &cobra.Command{
	Use:   "desc <target> [name=value...]",
	Short: "Shows all attributes of a single target",
	Long: `Shows the kind, condition, sources, data and dependency edges of a single
target in the realized graph, plus the targets that directly depend on it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		if len(rest) != 1 {
			logger.Fatal().Msg("Expected exactly one target name")
		}

		spec, graph, err := realizeFromFlags(ctx, cmd, overrides)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to realize the target graph")
		}

		tgt := graph.Lookup(rest[0])
		if tgt == nil {
			if spec.Builder.Lookup(rest[0]) != nil {
				logger.Fatal().Msgf("Target %s is excluded from this configuration by its condition", rest[0])
			}

			logger.Fatal().Msgf("Target %s has never been declared", rest[0])
		}

		fmt.Printf("name: %s\n", tgt.Name)
		fmt.Printf("type: %s\n", tgt.Kind)
		fmt.Printf("testonly: %t\n", tgt.TestOnly)
		if tgt.Condition != "" {
			fmt.Printf("condition: %s\n", tgt.Condition)
		}

		printSection("sources", tgt.Sources)
		printSection("data", tgt.Data)
		printSection("deps", tgt.Deps)

		dependents := graph.Dependents(tgt.Name)
		names := make([]string, 0, len(dependents))
		for _, ref := range dependents {
			names = append(names, ref.Name)
		}
		printSection("referenced by", names)

		return nil
	},
}

func printSection(title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
}

func init() {
	rootCmd.AddCommand(descCmd)
}
