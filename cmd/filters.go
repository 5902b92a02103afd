package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/filterlist"
)

var filtersCmd = &cobra.Command{
	Use:   "filters <file>",
	Short: "Prints the entries of a test filter file",
	Long: `Reads a test filter file and prints its entries followed by a count. The
entries are passed through untouched. daedalus only carries filter files as
target data, their contents are left to the test runner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, _ := newLogger(cmd)

		if len(args) != 1 {
			logger.Fatal().Msg("Expected exactly one filter file")
		}

		entries, err := filterlist.Load(args[0])
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to read %s", args[0])
		}

		for _, line := range entries {
			fmt.Println(line)
		}

		logger.Info().Msgf("%d entries", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
