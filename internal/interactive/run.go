// Package interactive runs the menu-driven session behind `devlama
// interactive`. A terminal gets a bubbletea program; piped input is fed
// line by line through the same Model.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/py-lama/jslama/internal/clierr"
	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/router"
	"github.com/py-lama/jslama/internal/ui"
	"github.com/py-lama/jslama/internal/validate"
)

// Options configures a session.
type Options struct {
	Router *router.Router
	Config generator.Config
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Run starts a session and blocks until the user exits, input ends, or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	fmt.Fprintln(opts.Out, Banner())

	if isTerminal(opts.In) && isTerminal(opts.Out) {
		m := NewModel(ctx, opts.Router, opts.Config, ProgramPrinter(opts.ErrOut))
		p := tea.NewProgram(m,
			tea.WithContext(ctx),
			tea.WithInput(opts.In),
			tea.WithOutput(opts.Out),
		)
		final, err := p.Run()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
				return clierr.Wrap(clierr.CodeInterrupted, "interrupted", ctx.Err())
			}
			return fmt.Errorf("running interactive session: %w", err)
		}
		if fm, ok := final.(Model); ok {
			return fm.Err()
		}
		return nil
	}

	m := NewModel(ctx, opts.Router, opts.Config, WriterPrinter(opts.Out, opts.ErrOut))
	return RunLines(ctx, m, opts.In, opts.Out)
}

// RunLines drives m from newline-separated input. At the menu a line may be
// an action name, its label, or its number. End of input at the menu ends
// the session like "exit"; anywhere else it is an error. Cancelling ctx
// ends the session even while a read is blocked.
func RunLines(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	input := readLines(ctx, in)
	for m.state != router.Terminated {
		fmt.Fprint(out, m.Prompt())
		line, ok, err := input.next(ctx)
		if err != nil {
			fmt.Fprintln(out)
			return err
		}
		if !ok {
			fmt.Fprintln(out)
			if m.state == router.Idle {
				m = drive(m, ActionSelectedMsg{Action: router.ActionExit})
				break
			}
			return clierr.New(clierr.CodeFailure, "input ended before the prompt was answered")
		}

		switch m.state {
		case router.Idle:
			action, err := parseChoice(line, m.choices)
			if err != nil {
				fmt.Fprintln(out, ui.ErrorLine(err.Error()))
				continue
			}
			m = drive(m, ActionSelectedMsg{Action: action})
		case router.AwaitingArgs:
			m = drive(m, InputSubmittedMsg{Value: line})
		}
	}
	return m.Err()
}

// drive feeds msg to m and runs the resulting commands synchronously until
// the model settles.
func drive(m Model, msg tea.Msg) Model {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next, cmd := m.Update(queue[0])
		queue = queue[1:]
		m = next.(Model)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	default:
		return []tea.Msg{msg}
	}
}

func parseChoice(line string, choices []router.Choice) (router.Action, error) {
	s := strings.TrimSpace(line)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].Action, nil
		}
		return "", fmt.Errorf("choose a number between 1 and %d", len(choices))
	}
	for _, c := range choices {
		if strings.EqualFold(s, c.Label) {
			return c.Action, nil
		}
	}
	return router.ParseAction(s)
}

// AskName prompts on out until a usable project name is read from in.
func AskName(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	input := readLines(ctx, in)
	for {
		fmt.Fprint(out, "? "+questionName+" ")
		line, ok, err := input.next(ctx)
		if err != nil {
			fmt.Fprintln(out)
			return "", err
		}
		if !ok {
			fmt.Fprintln(out)
			return "", &validate.Error{Field: "projectName", Message: "Project name is required"}
		}
		name, err := validate.ProjectName(line)
		if err == nil {
			return name, nil
		}
		fmt.Fprintln(out, ">> "+err.Error())
	}
}

// lineReader scans input on its own goroutine so that a read blocked on a
// terminal or pipe never delays cancellation.
type lineReader struct {
	lines chan string
	err   error // written before lines is closed
}

func readLines(ctx context.Context, in io.Reader) *lineReader {
	r := &lineReader{lines: make(chan string)}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

// next returns the next line, or ok=false once input has ended.
func (r *lineReader) next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, clierr.Wrap(clierr.CodeInterrupted, "interrupted", err)
	}
	select {
	case <-ctx.Done():
		return "", false, clierr.Wrap(clierr.CodeInterrupted, "interrupted", ctx.Err())
	case line, ok := <-r.lines:
		if ok {
			return line, true, nil
		}
		if err := ctx.Err(); err != nil {
			return "", false, clierr.Wrap(clierr.CodeInterrupted, "interrupted", err)
		}
		if r.err != nil {
			return "", false, fmt.Errorf("reading input: %w", r.err)
		}
		return "", false, nil
	}
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
