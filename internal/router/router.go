// Package router dispatches a parsed user intent (generate, init, exit) to
// the generator or the scaffolder and turns the outcome into the text shown
// to the user. Both the one-shot CLI commands and the interactive session go
// through a Router, so they validate and report identically.
package router

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/scaffold"
	"github.com/py-lama/jslama/internal/ui"
)

// State is a step in a single command cycle.
type State int

const (
	Idle State = iota
	AwaitingArgs
	Dispatching
	Reporting
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingArgs:
		return "awaiting-args"
	case Dispatching:
		return "dispatching"
	case Reporting:
		return "reporting"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action is one of the operations a user can pick.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionInit     Action = "init"
	ActionExit     Action = "exit"
)

// Choice pairs an Action with its menu label.
type Choice struct {
	Action Action
	Label  string
}

// Actions returns the interactive menu in display order.
func Actions() []Choice {
	return []Choice{
		{ActionGenerate, "Generate code"},
		{ActionInit, "Create new project"},
		{ActionExit, "Exit"},
	}
}

// ParseAction maps a command name to an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionGenerate, ActionInit, ActionExit:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// Scaffolder creates projects. *scaffold.Scaffolder satisfies it.
type Scaffolder interface {
	Create(ctx context.Context, d scaffold.Descriptor) (*scaffold.Result, error)
}

// Outcome is the reportable result of one dispatched action.
type Outcome struct {
	Action Action
	Code   string           // generate
	Result *scaffold.Result // init
	Err    error
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool { return o.Action == ActionExit && o.Err == nil }

// Router routes actions to the generator and scaffolder.
type Router struct {
	gen   generator.Generator
	scaf  Scaffolder
	getwd func() (string, error)
}

// Option configures a Router.
type Option func(*Router)

// WithWorkingDir resolves new projects against dir instead of os.Getwd.
func WithWorkingDir(dir string) Option {
	return func(r *Router) {
		r.getwd = func() (string, error) { return dir, nil }
	}
}

// New returns a Router over gen and scaf.
func New(gen generator.Generator, scaf Scaffolder, opts ...Option) *Router {
	r := &Router{gen: gen, scaf: scaf, getwd: os.Getwd}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate validates prompt and asks the generator for code.
func (r *Router) Generate(ctx context.Context, cfg generator.Config, prompt string) (string, error) {
	req, err := generator.NewRequest(prompt)
	if err != nil {
		return "", err
	}
	return r.gen.Generate(ctx, req, cfg)
}

// Init creates a project called name in the working directory.
func (r *Router) Init(ctx context.Context, name string) (*scaffold.Result, error) {
	cwd, err := r.getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	d, err := scaffold.NewDescriptor(cwd, name)
	if err != nil {
		return nil, err
	}
	return r.scaf.Create(ctx, d)
}

// Dispatch runs action with arg (the prompt or project name) and captures
// the outcome. Errors are returned inside the Outcome so callers can report
// and carry on.
func (r *Router) Dispatch(ctx context.Context, action Action, cfg generator.Config, arg string) Outcome {
	out := Outcome{Action: action}
	switch action {
	case ActionGenerate:
		out.Code, out.Err = r.Generate(ctx, cfg, arg)
	case ActionInit:
		out.Result, out.Err = r.Init(ctx, arg)
	case ActionExit:
	default:
		out.Err = fmt.Errorf("unknown action %q", action)
	}
	return out
}

// FormatGenerated renders the block printed after a successful generate.
func FormatGenerated(code string) string {
	return "\n" + ui.Header("Generated code:") + "\n\n" + code
}

// FormatCreated renders the success line and any warnings for a new project.
func FormatCreated(res *scaffold.Result) string {
	var b strings.Builder
	b.WriteString(ui.SuccessLine(res.Message))
	if len(res.Warnings) > 0 {
		b.WriteString("\n\nWarnings:")
		for _, w := range res.Warnings {
			b.WriteString("\n" + ui.WarningLine(w))
		}
	}
	return b.String()
}

// Report returns the user-facing text for o and whether it belongs on the
// error stream.
func Report(o Outcome) (text string, isErr bool) {
	if o.Err != nil {
		return ui.ErrorLine(o.Err.Error()), true
	}
	switch o.Action {
	case ActionGenerate:
		return FormatGenerated(o.Code), false
	case ActionInit:
		return FormatCreated(o.Result), false
	default:
		return "", false
	}
}
