package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/clierr"
	"github.com/py-lama/jslama/internal/config"
	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/router"
	"github.com/py-lama/jslama/internal/scaffold"
	"github.com/py-lama/jslama/internal/ui"
	"github.com/py-lama/jslama/internal/version"
)

// buildInfo is injected via ldflags.
type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// app is the state shared by one command tree. It is filled in by the root
// command's PersistentPreRunE before any subcommand runs.
type app struct {
	build     buildInfo
	settings  *config.Settings
	configErr error
	logger    *log.Logger
}

// allowBrokenConfig marks commands that still run when the config file
// cannot be parsed, so it can be diagnosed or rewritten.
const allowBrokenConfig = "devlama.allow-broken-config"

// NewRootCmd constructs the devlama root command.
func NewRootCmd(ver, commit, date string) *cobra.Command {
	a := &app{build: buildInfo{
		Version: version.OrFallback(ver),
		Commit:  commit,
		Date:    date,
	}}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + `: ` + branding.Description() + `.

Generate code from natural-language prompts and scaffold new JavaScript
projects. Run without a command to see this help, or start an interactive
session with "` + branding.CLIName() + ` interactive".`,
		Version:           a.build.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringP(config.KeyModel, "m", branding.DefaultModel(), "specify the model to use")
	flags.Float64(config.KeyTemperature, generator.DefaultTemperature, "set the temperature for generation")
	flags.Bool(config.KeyVerbose, false, "enable verbose output")

	cmd.AddCommand(
		newGenerateCmd(a),
		newInitCmd(a),
		newInteractiveCmd(a),
		newConfigCmd(a),
		newDoctorCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// setup loads layered settings and binds the global flags on top of them.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	var parseErr *config.ParseError
	switch {
	case errors.As(err, &parseErr) && allowsBrokenConfig(cmd):
		a.configErr = err
	case err != nil:
		return err
	}
	v := settings.Viper()
	for _, key := range config.Keys() {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(key)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", key, err)
		}
	}
	a.settings = settings

	level := log.InfoLevel
	if v.GetBool(config.KeyVerbose) {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: branding.CLIName(),
		Level:  level,
	})
	return nil
}

func allowsBrokenConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[allowBrokenConfig] != "" {
			return true
		}
	}
	return false
}

// generation returns the validated generation config for this invocation.
func (a *app) generation() (generator.Config, error) {
	return a.settings.Generation()
}

func (a *app) newRouter() *router.Router {
	return router.New(
		generator.NewStub(a.logger),
		scaffold.New(scaffold.WithLogger(a.logger)),
	)
}

// Execute runs the root command with build info injected via ldflags and
// prints any error to stderr. The returned error carries the exit code.
func Execute(ver, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second signal falls through to the default handler and kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	cmd := NewRootCmd(ver, commit, date)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil && clierr.ExitCodeOf(err) != clierr.CodeInterrupted {
		err = clierr.Wrap(clierr.CodeInterrupted, "interrupted", err)
	}
	ui.Error(cmd.ErrOrStderr(), err)
	return err
}

// usageError marks an invocation the command cannot run as typed.
func usageError(format string, args ...any) error {
	return clierr.Newf(clierr.CodeFailure, format, args...)
}
