package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/interactive"
	"github.com/py-lama/jslama/internal/router"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [projectName]",
		Short: "Initialize a new project",
		Long: `Create a new project directory containing package.json, README.md and
index.js. The project is created under the current directory and an existing
entry with the same name is never overwritten.

When projectName is omitted you are asked for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				var err error
				name, err = interactive.AskName(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			res, err := a.newRouter().Init(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), router.FormatCreated(res))
			return nil
		},
	}
}
