package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/router"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate code based on a prompt",
		Long: `Generate code from a natural-language prompt using the configured model.

Quote the prompt so it reaches the command as a single argument:

  devlama generate "Create a function that adds two numbers"`,
		Args: promptArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.generation()
			if err != nil {
				return err
			}
			code, err := a.newRouter().Generate(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), router.FormatGenerated(code))
			return nil
		},
	}
}

func promptArg(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return usageError("missing required argument 'prompt'")
	case len(args) > 1:
		return usageError("too many arguments; quote the prompt so it is passed as one argument")
	}
	return nil
}
