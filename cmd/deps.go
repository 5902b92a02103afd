package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

var depsCmd = &cobra.Command{
	Use:   "deps <target> [name=value...]",
	Short: "Lists the dependencies of a target",
	Long: `Lists the targets the given target depends on. By default only direct
dependencies are shown, --transitive prints the full dependency closure in
dependency order (dependencies before their dependents).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdgeQuery(cmd, args, func(graph *buildgraph.Graph, name string, transitive bool) []*buildgraph.Target {
			if transitive {
				return graph.DepClosure(name)
			}

			return graph.Deps(name)
		})
	},
}

var refsCmd = &cobra.Command{
	Use:   "refs <target> [name=value...]",
	Short: "Lists the targets that depend on a target",
	Long: `Lists the targets that depend on the given target. By default only direct
dependents are shown, --transitive prints every target that reaches the given
one through its dependencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdgeQuery(cmd, args, func(graph *buildgraph.Graph, name string, transitive bool) []*buildgraph.Target {
			if transitive {
				return graph.RefClosure(name)
			}

			return graph.Dependents(name)
		})
	},
}

func runEdgeQuery(cmd *cobra.Command, args []string, query func(*buildgraph.Graph, string, bool) []*buildgraph.Target) error {
	logger, ctx := newLogger(cmd)

	rest, overrides, err := splitOverrides(args)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse the flag overrides")
	}

	if len(rest) != 1 {
		logger.Fatal().Msg("Expected exactly one target name")
	}

	transitive, err := cmd.Flags().GetBool("transitive")
	if err != nil {
		return err
	}

	_, graph, err := realizeFromFlags(ctx, cmd, overrides)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to realize the target graph")
	}

	if graph.Lookup(rest[0]) == nil {
		logger.Fatal().Msgf("Target %s doesn't exist in this configuration", rest[0])
	}

	for _, tgt := range query(graph, rest[0], transitive) {
		fmt.Println(tgt.Name)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(refsCmd)

	depsCmd.Flags().BoolP("transitive", "t", false, "list the full dependency closure instead of only direct dependencies")
	refsCmd.Flags().BoolP("transitive", "t", false, "list every target that transitively depends on the given one")
}
