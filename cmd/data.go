package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data <target> [name=value...]",
	Short: "Lists the data files a target needs at runtime",
	Long: `Lists the data entries of the given target and all of its dependencies.
This is the set of files an external runner has to have on disk to run the
target, test filter lists included.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		if len(rest) != 1 {
			logger.Fatal().Msg("Expected exactly one target name")
		}

		_, graph, err := realizeFromFlags(ctx, cmd, overrides)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to realize the target graph")
		}

		if graph.Lookup(rest[0]) == nil {
			logger.Fatal().Msgf("Target %s doesn't exist in this configuration", rest[0])
		}

		for _, item := range graph.DataClosure(rest[0]) {
			fmt.Println(item)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dataCmd)
}
