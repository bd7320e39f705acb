package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/config"
	"github.com/py-lama/jslama/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: `Read and write settings stored at ~/.devlama/config.yaml.

Valid keys: ` + strings.Join(config.Keys(), ", ") + `. Values can also come from
DEVLAMA_<KEY> environment variables; command-line flags win over both.`,
		Annotations: map[string]string{allowBrokenConfig: "true"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			if a.configErr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved unreadable config to %s\n", config.BackupPath())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			if !slices.Contains(config.Keys(), key) {
				return usageError("unknown config key %q (valid keys: %s)", args[0], strings.Join(config.Keys(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.settings.Get(key))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every setting with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", ui.Info(key), a.settings.Get(key))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
			return nil
		},
	})

	return cmd
}
