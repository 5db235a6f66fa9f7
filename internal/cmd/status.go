package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memocli/memo/internal/pkg/auth"
	"github.com/memocli/memo/internal/pkg/config"
	"github.com/memocli/memo/internal/pkg/git"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show repository, configuration, and credential status",
	Long: `Status is read-only and reports every section even when earlier ones
fail, so it is safe to run anywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		fmt.Fprintln(out, "Repository:")
		gitClient := git.NewClient()
		if !gitClient.IsRepository(ctx) {
			fmt.Fprintln(out, "  not a git repository")
		} else {
			fmt.Fprintln(out, "  git repository: yes")
			staged, err := gitClient.HasStagedChanges(ctx)
			switch {
			case err != nil:
				fmt.Fprintf(out, "  staged changes: unknown (%v)\n", err)
			case staged:
				fmt.Fprintln(out, "  staged changes: yes")
			default:
				fmt.Fprintln(out, "  staged changes: no")
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Configuration:")
		store, err := config.NewStore()
		if err != nil {
			fmt.Fprintf(out, "  unavailable (%v)\n", err)
		} else if err := store.Load(); err != nil {
			fmt.Fprintf(out, "  unavailable (%v)\n", err)
		} else {
			cfg, err := store.Effective()
			if err != nil {
				fmt.Fprintf(out, "  unavailable (%v)\n", err)
			} else {
				fmt.Fprintf(out, "  default model: %s\n", cfg.DefaultModel)
				fmt.Fprintf(out, "  interactive mode: %t\n", cfg.InteractiveMode)
				fmt.Fprintf(out, "  writes go to: %s\n", store.TargetPath())
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Credentials:")
		resolver, err := auth.NewResolver()
		if err != nil {
			fmt.Fprintf(out, "  unavailable (%v)\n", err)
			return nil
		}
		for _, status := range resolver.List() {
			if status.Masked == "" {
				fmt.Fprintf(out, "  %-8s %s\n", status.Provider, status.Source)
				continue
			}
			fmt.Fprintf(out, "  %-8s %s (from %s)\n",
				status.Provider, status.Masked, status.Source)
		}
		return nil
	},
}
