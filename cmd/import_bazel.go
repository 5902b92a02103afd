package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/bazelimport"
)

var importBazelCmd = &cobra.Command{
	Use:   "import-bazel <BUILD file>",
	Short: "Converts a Bazel BUILD file into a build script",
	Long: `Reads the given Bazel BUILD file and converts the rules it understands
(cc_library, cc_binary, filegroup) into the equivalent daedalus declarations.
The converted script is printed to stdout or written to the file passed
with -o.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, _ := newLogger(cmd)

		if len(args) != 1 {
			logger.Fatal().Msg("Expected exactly one BUILD file")
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		contents, err := ioutil.ReadFile(args[0])
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to read %s", args[0])
		}

		targets, err := bazelimport.Convert(args[0], contents)
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to convert %s", args[0])
		}

		script := bazelimport.Render(targets)
		if output == "" {
			fmt.Print(script)
			return nil
		}

		err = ioutil.WriteFile(output, []byte(script), os.FileMode(0660))
		if err != nil {
			logger.Fatal().Err(err).Msgf("Failed to write %s", output)
		}

		logger.Info().Msgf("Converted %d targets, wrote %s", len(targets), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importBazelCmd)
	importBazelCmd.Flags().StringP("output", "o", "", "write the converted script to this file instead of stdout")
}
