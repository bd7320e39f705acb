package runtime

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/py-lama/jslama/internal/version"
)

// Tool names probed by Toolchain.
const (
	ToolNode = "node"
	ToolNPM  = "npm"
)

// Tool is the result of probing one executable.
type Tool struct {
	Name    string
	Path    string
	Version string // canonical semver; empty when Err is set
	Err     error
}

// Found reports whether the executable was located and answered --version.
func (t Tool) Found() bool { return t.Err == nil }

// Prober looks up executables and asks them for their version.
type Prober struct {
	lookPath func(file string) (string, error)
	output   func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewProber returns a Prober that searches PATH.
func NewProber() *Prober {
	return &Prober{lookPath: exec.LookPath, output: commandOutput}
}

func commandOutput(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}

// Probe locates name on PATH and runs `name --version`.
func (p *Prober) Probe(ctx context.Context, name string) Tool {
	t := Tool{Name: name}

	path, err := p.lookPath(name)
	if err != nil {
		t.Err = fmt.Errorf("%s not found: %w", name, err)
		return t
	}
	t.Path = path

	out, err := p.output(ctx, path, "--version")
	if err != nil {
		t.Err = fmt.Errorf("running %s --version: %w", name, err)
		return t
	}

	// Some tools print a banner; the version is the last line.
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	v, err := version.Canonical(lines[len(lines)-1])
	if err != nil {
		t.Err = err
		return t
	}
	t.Version = v
	return t
}

// Toolchain probes node and npm, in that order.
func (p *Prober) Toolchain(ctx context.Context) []Tool {
	return []Tool{p.Probe(ctx, ToolNode), p.Probe(ctx, ToolNPM)}
}
