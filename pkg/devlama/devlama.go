// Package devlama is the programmatic API of DevLama: generate code from a
// prompt and scaffold new projects without going through the CLI.
//
//	d, err := devlama.New(devlama.Options{Model: "codellama"})
//	if err != nil {
//		return err
//	}
//	code, err := d.GenerateCode(ctx, "Create a function that adds two numbers")
package devlama

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/router"
	"github.com/py-lama/jslama/internal/scaffold"
	"github.com/py-lama/jslama/internal/validate"
)

type (
	// Config is the validated generation configuration.
	Config = generator.Config
	// Request is a single generation request.
	Request = generator.Request
	// Generator turns a request into source text. Supply one in Options to
	// replace the built-in placeholder.
	Generator = generator.Generator
	// GenerateFunc adapts a function to Generator.
	GenerateFunc = generator.GenerateFunc
)

// Sentinel errors for use with errors.Is.
var (
	ErrEmptyPrompt     = generator.ErrEmptyPrompt
	ErrDirectoryExists = scaffold.ErrDirectoryExists
)

// IsValidation reports whether err was caused by invalid user input.
func IsValidation(err error) bool { return validate.IsValidation(err) }

// Options configures a DevLama. Zero values select the defaults: model
// "codellama", temperature 0.7, the current working directory, and the
// placeholder generator.
type Options struct {
	Model       string
	Temperature float64
	Verbose     bool

	// Dir is where Init creates projects.
	Dir string

	Generator Generator

	// Logger receives verbose notices. When nil and Verbose is set, notices
	// go to stderr.
	Logger *log.Logger
}

// Result describes a project created by Init.
type Result struct {
	Success  bool
	Path     string
	Message  string
	Files    []string
	Warnings []string
}

// DevLama generates code and creates projects with a fixed configuration.
type DevLama struct {
	cfg    Config
	router *router.Router
}

// New validates opts and returns a DevLama.
func New(opts Options) (*DevLama, error) {
	model := opts.Model
	if model == "" {
		model = branding.DefaultModel()
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = generator.DefaultTemperature
	}
	cfg, err := generator.NewConfig(model, temperature, opts.Verbose)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
		if opts.Verbose {
			logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: branding.CLIName()})
		}
	}

	gen := opts.Generator
	if gen == nil {
		gen = generator.NewStub(logger)
	}

	var ropts []router.Option
	if opts.Dir != "" {
		dir, err := filepath.Abs(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("resolving project directory: %w", err)
		}
		ropts = append(ropts, router.WithWorkingDir(dir))
	}

	return &DevLama{
		cfg:    cfg,
		router: router.New(gen, scaffold.New(scaffold.WithLogger(logger)), ropts...),
	}, nil
}

// Config returns the configuration every call uses.
func (d *DevLama) Config() Config { return d.cfg }

// GenerateCode returns code for prompt. Blank prompts fail with
// ErrEmptyPrompt.
func (d *DevLama) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return d.router.Generate(ctx, d.cfg, prompt)
}

// Init creates a project named projectName containing package.json,
// README.md and index.js. An existing entry with that name fails with
// ErrDirectoryExists and is left untouched.
func (d *DevLama) Init(ctx context.Context, projectName string) (*Result, error) {
	res, err := d.router.Init(ctx, projectName)
	if err != nil {
		return nil, err
	}
	return &Result{
		Success:  res.Success,
		Path:     res.Path,
		Message:  res.Message,
		Files:    res.Files,
		Warnings: res.Warnings,
	}, nil
}

// GenerateCode is shorthand for New(opts) followed by GenerateCode.
func GenerateCode(ctx context.Context, prompt string, opts Options) (string, error) {
	d, err := New(opts)
	if err != nil {
		return "", err
	}
	return d.GenerateCode(ctx, prompt)
}
