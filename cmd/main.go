package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/buildscript"
)

var rootCmd = &cobra.Command{
	Use:   "daedalus",
	Short: "Declarative build graph tool",
	Long: `daedalus executes the first BUILD.star file it finds, resolves the declared
targets against a build configuration and answers queries about the resulting
target graph.`,
	Version: buildscript.Version,
}

func init() {
	rootCmd.PersistentFlags().String("script", "BUILD.star", "name or path of the build script; bare names are searched upwards from the working directory")
	rootCmd.PersistentFlags().String("args", "", "path to a Starlark file with flag values (defaults to args.star next to the build script)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug output")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
