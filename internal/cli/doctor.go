package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/config"
	"github.com/py-lama/jslama/internal/manifest"
	"github.com/py-lama/jslama/internal/runtime"
	"github.com/py-lama/jslama/internal/scaffold"
)

func newDoctorCmd(a *app) *cobra.Command {
	var checkManifest string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Health check for the DevLama setup",
		Long: `Run diagnostic checks on your DevLama configuration and on the Node.js
toolchain that generated projects run on.

With --check-manifest, also validate a package.json (or the package.json
inside a project directory) against the schema used for new projects.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{allowBrokenConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			if !runConfigCheck(out, a) {
				failed++
			}
			runRuntimeCheck(cmd.Context(), out, runtime.NewProber())
			if checkManifest != "" {
				if err := runManifestCheck(out, checkManifest); err != nil {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a package.json file or project directory")
	return cmd
}

func runConfigCheck(out io.Writer, a *app) bool {
	fmt.Fprintln(out, "Configuration check:")
	fmt.Fprintf(out, "  [INFO] config directory: %s\n", config.Dir())

	ok := true
	path := config.FilePath()
	switch _, err := os.Stat(path); {
	case os.IsNotExist(err):
		fmt.Fprintf(out, "  [INFO] %s not found, using defaults\n", path)
	case a.configErr != nil:
		fmt.Fprintf(out, "  [FAIL] Cannot parse %s: %v\n", path, errors.Unwrap(a.configErr))
		fmt.Fprintf(out, "  [INFO] run \"%s config set\" to rewrite it\n", branding.CLIName())
		ok = false
	default:
		fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
	}

	cfg, err := a.generation()
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] generation settings: %v\n", err)
		return false
	}
	fmt.Fprintf(out, "  [ OK ] model %s, temperature %g\n", cfg.Model, cfg.Temperature)
	return ok
}

// runRuntimeCheck reports the toolchain generated projects need. A missing
// toolchain does not fail the doctor run since generation works without it.
func runRuntimeCheck(ctx context.Context, out io.Writer, p *runtime.Prober) {
	fmt.Fprintln(out, "Runtime check:")
	for _, tool := range p.Toolchain(ctx) {
		if !tool.Found() {
			fmt.Fprintf(out, "  [MISS] %v\n", tool.Err)
			continue
		}
		if tool.Name == runtime.ToolNode {
			if err := runtime.CheckNode(tool); err != nil {
				fmt.Fprintf(out, "  [WARN] %v\n", err)
				continue
			}
		}
		fmt.Fprintf(out, "  [ OK ] %s %s found at %s\n", tool.Name, tool.Version, tool.Path)
	}
}

func runManifestCheck(out io.Writer, path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, scaffold.PackageFile)
	}
	fmt.Fprintf(out, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		pkg, err := manifest.ParseFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [ OK ] Valid manifest\n")
			return nil
		}
		fmt.Fprintf(out, "  [ OK ] Valid package manifest: %s (v%s)\n", pkg.Name, pkg.Version)
		return nil
	}

	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "    - %s\n", issue)
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
