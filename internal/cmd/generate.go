package cmd

import (
	"github.com/spf13/cobra"

	"github.com/memocli/memo/internal/app"
	"github.com/memocli/memo/internal/pkg/ai"
	"github.com/memocli/memo/internal/pkg/auth"
	"github.com/memocli/memo/internal/pkg/config"
	apperrors "github.com/memocli/memo/internal/pkg/errors"
	"github.com/memocli/memo/internal/pkg/git"
	"github.com/memocli/memo/internal/pkg/ui"
)

var (
	generateModel          string
	generateNonInteractive bool
	generateShowPrompt     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a commit message for the staged changes",
	RunE:  runGenerate,
}

func init() {
	// Bare "memo" accepts the same flags as "memo generate".
	addGenerateFlags(generateCmd)
	addGenerateFlags(rootCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateModel, "model", "m", "",
		"model to use for this invocation (overrides default_model)")
	cmd.Flags().BoolVar(&generateNonInteractive, "no-interactive", false,
		"print the message without prompting or committing")
	cmd.Flags().BoolVar(&generateShowPrompt, "show-prompt", false,
		"print the prompt sent to the model")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	store, err := config.NewStore()
	if err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return err
	}
	cfg, err := store.Effective()
	if err != nil {
		return err
	}

	resolver, err := auth.NewResolver()
	if err != nil {
		return err
	}

	var manager ui.Manager
	if generateNonInteractive || !cfg.InteractiveMode {
		manager = ui.NewNonInteractive()
	} else {
		manager = ui.NewConsole(true)
	}

	service := app.NewService(git.NewClient(), resolver, ai.NewProvider, manager, *cfg)
	err = service.Generate(cmd.Context(), app.GenerateOptions{
		Model:          generateModel,
		NonInteractive: generateNonInteractive,
		ShowPrompt:     generateShowPrompt || apperrors.IsVerbose(),
	})
	return err
}
