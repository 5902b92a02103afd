package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var argsCmd = &cobra.Command{
	Use:   "args [name=value...]",
	Short: "Shows the declared flags and their resolved values",
	Long: `Shows the value of every declared flag after applying the args file and the
given overrides. With --list, the defaults and help texts from the
declare_flag() calls are included.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, ctx := newLogger(cmd)

		rest, overrides, err := splitOverrides(args)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
		}

		if len(rest) > 0 {
			logger.Fatal().Msgf("Unexpected argument %s", rest[0])
		}

		list, err := cmd.Flags().GetBool("list")
		if err != nil {
			return err
		}

		spec, scriptPath, err := loadSpec(ctx, cmd)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load the build script")
		}

		config, err := loadConfig(ctx, cmd, spec, scriptPath, overrides)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to resolve the build configuration")
		}

		for _, name := range spec.FlagOrder {
			if !list {
				fmt.Printf("%s = %t\n", name, config[name])
				continue
			}

			opt := spec.Flags[name]
			fmt.Printf("%s (default %t, current %t)\n", name, opt.Default, config[name])
			if opt.Help != "" {
				fmt.Printf("    %s\n", opt.Help)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(argsCmd)
	argsCmd.Flags().BoolP("list", "l", false, "include the default value and help text of each flag")
}
