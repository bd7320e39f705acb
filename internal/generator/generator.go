// Package generator defines the code generation capability used by the CLI
// and the public API. Generator is the seam where an inference backend plugs
// in; Stub is the placeholder implementation shipped today.
package generator

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/validate"
)

// Defaults applied when no model or temperature is configured.
const (
	DefaultTemperature = 0.7
	MinTemperature     = 0.0
	MaxTemperature     = 2.0
)

// ErrEmptyPrompt matches the validation error for a blank prompt.
var ErrEmptyPrompt = &validate.Error{Field: "prompt"}

// Config is the per-invocation generation configuration. Build it with
// NewConfig; it is passed by value and never changed afterwards.
type Config struct {
	Model       string
	Temperature float64
	Verbose     bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Model:       branding.DefaultModel(),
		Temperature: DefaultTemperature,
	}
}

// NewConfig validates the values and returns a Config.
func NewConfig(model string, temperature float64, verbose bool) (Config, error) {
	m, err := validate.NonEmpty("model", model, "Model name cannot be empty")
	if err != nil {
		return Config{}, err
	}
	if math.IsNaN(temperature) || temperature < MinTemperature || temperature > MaxTemperature {
		return Config{}, &validate.Error{
			Field:   "temperature",
			Message: fmt.Sprintf("Temperature must be between %g and %g, got %g", MinTemperature, MaxTemperature, temperature),
		}
	}
	return Config{Model: m, Temperature: temperature, Verbose: verbose}, nil
}

// Request is a single generation request.
type Request struct {
	Prompt string
}

// NewRequest rejects prompts that are blank after trimming. The prompt is
// kept as given.
func NewRequest(prompt string) (Request, error) {
	if _, err := validate.NonEmpty("prompt", prompt, "Prompt cannot be empty"); err != nil {
		return Request{}, err
	}
	return Request{Prompt: prompt}, nil
}

// Generator turns a request into source text.
type Generator interface {
	Generate(ctx context.Context, req Request, cfg Config) (string, error)
}

// GenerateFunc adapts an ordinary function to Generator.
type GenerateFunc func(ctx context.Context, req Request, cfg Config) (string, error)

// Generate calls f.
func (f GenerateFunc) Generate(ctx context.Context, req Request, cfg Config) (string, error) {
	return f(ctx, req, cfg)
}

// Stub produces fixed placeholder code. It never leaves the process.
type Stub struct {
	logger *log.Logger
}

// NewStub returns a Stub that writes verbose notices to logger. A nil logger
// discards them.
func NewStub(logger *log.Logger) *Stub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Stub{logger: logger}
}

// Generate returns placeholder code embedding the model name and the prompt
// exactly as given.
func (s *Stub) Generate(ctx context.Context, req Request, cfg Config) (string, error) {
	if _, err := NewRequest(req.Prompt); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if cfg.Verbose {
		s.logger.Infof("Generating code with model: %s", cfg.Model)
	}

	product := branding.DisplayName()
	return fmt.Sprintf(`// Generated by %s with model: %s
// %s

// TODO: Implement the actual code generation
console.log('Hello, %s!');`, product, cfg.Model, req.Prompt, product), nil
}
