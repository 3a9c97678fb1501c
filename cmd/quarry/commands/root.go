package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
	yamlOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quarry",
		Short: "Quarry - build definition resolver",
		Long: `Quarry evaluates Starlark build definitions and resolves the effective
value of every field for a chosen context (configuration, platform,
system, source file).

Definitions are ordered, criteria-gated blocks of field assignments;
scalar fields resolve last-match-wins, list fields accumulate across
matching blocks with removal patterns applied in order.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "output in YAML format")

	// Add subcommands
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newFieldsCommand())

	return rootCmd
}
