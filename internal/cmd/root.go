// Package cmd wires the memo CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "memo",
	Short: "AI-assisted conventional commit messages",
	Long: `Memo turns your staged changes into a conventional commit message.

It reads the staged diff, project conventions, and recent history, asks an
AI provider for a message, and lets you accept, regenerate, edit, or deny
the result before anything is committed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apperrors.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare "memo" generates, matching the most common invocation.
		return runGenerate(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug output and full error chains")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(statusCmd)
}
