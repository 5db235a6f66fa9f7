package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/memocli/memo/internal/pkg/auth"
	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider API keys",
	Long: `Credentials resolve in order: the memo credential store, then the
provider's environment variable, then .env files in the working
directory, your home directory, and ~/.memo/.env.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider> [key]",
	Short: "Store an API key for a provider",
	Long: `Store an API key in the memo credential store. The key may be passed
as the second argument; when omitted, it is read from a hidden prompt.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auth.NewStore()
		if err != nil {
			return err
		}

		var secret string
		if len(args) == 2 {
			secret = strings.TrimSpace(args[1])
		} else {
			secret, err = readSecret(cmd, args[0])
			if err != nil {
				return err
			}
		}
		if secret == "" {
			return apperrors.NewValidationError("API key must not be empty")
		}
		if err := store.Set(args[0], secret); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored key for %s\n", args[0])
		return nil
	},
}

var authShowCmd = &cobra.Command{
	Use:   "show [provider]",
	Short: "Show the masked key and where it resolves from",
	Long: `Show how a provider's credential resolves. With no provider, every
known provider is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := auth.NewResolver()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			printStatuses(cmd, resolver.List())
			return nil
		}

		secret, source, ok := resolver.Resolve(args[0])
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no credential found\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (from %s)\n", args[0], auth.Mask(secret), source)
		return nil
	},
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credential status for every provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := auth.NewResolver()
		if err != nil {
			return err
		}
		printStatuses(cmd, resolver.List())
		return nil
	},
}

func printStatuses(cmd *cobra.Command, statuses []auth.Status) {
	for _, status := range statuses {
		if status.Masked == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", status.Provider, status.Source)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s (from %s)\n",
			status.Provider, status.Masked, status.Source)
	}
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove a stored API key",
	Long: `Remove the key from the memo credential store. Keys supplied through
environment variables or .env files are not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auth.NewStore()
		if err != nil {
			return err
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed stored key for %s\n", args[0])
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authListCmd)
	authCmd.AddCommand(authRemoveCmd)
}

// readSecret prompts for the key without echoing when attached to a
// terminal, and falls back to a plain line read otherwise.
func readSecret(cmd *cobra.Command, provider string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "API key for %s: ", provider)

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var secret string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &secret); err != nil {
		return "", err
	}
	return strings.TrimSpace(secret), nil
}
