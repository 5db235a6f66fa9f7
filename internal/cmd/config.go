package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memocli/memo/internal/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
	Long: `Configuration merges three layers: built-in defaults, the user file at
~/.memo.json, and the project file at ./.memo.json. Later layers win per
key. Writes go to the project file when one exists, otherwise to the
user file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print the effective configuration or a single value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadConfigStore()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			value, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
			return nil
		}

		rendered, err := store.EffectiveJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dotted path, for example:

  memo config set default_model gpt-4.1-mini
  memo config set commit_rules.max_subject_length 50
  memo config set commit_rules.allowed_types feat,fix,chore`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadConfigStore()
		if err != nil {
			return err
		}
		if err := store.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], store.TargetPath())
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset <key|all>",
	Short: "Reset a value, or the whole target file, to defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadConfigStore()
		if err != nil {
			return err
		}

		if args[0] == "all" {
			if err := store.ResetAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", store.TargetPath())
			return nil
		}

		if err := store.Reset(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s in %s\n", args[0], store.TargetPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}

func loadConfigStore() (*config.Store, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// formatValue renders a config value for display. Sections render as
// formatted JSON so they look like the full `config show` output.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case map[string]interface{}:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}
