package cli

import (
	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/interactive"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start interactive mode",
		Long: `Start a session that repeatedly asks what to do next: generate code,
create a new project, or exit. Piped input is read one answer per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.generation()
			if err != nil {
				return err
			}
			return interactive.Run(cmd.Context(), interactive.Options{
				Router: a.newRouter(),
				Config: cfg,
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
			})
		},
	}
}
