package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/clierr"
	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/router"
	"github.com/py-lama/jslama/internal/validate"
)

const (
	questionAction = "What would you like to do?"
	questionPrompt = "Describe the code you want to generate:"
	questionName   = "Project name:"
	farewell       = "Goodbye! 👋"
)

// Printer emits text above the live view and then runs next. isErr marks
// text that belongs on the error stream.
type Printer func(text string, isErr bool, next tea.Cmd) tea.Cmd

// ProgramPrinter prints through the running tea.Program. Error text is
// also written to errOut unless errOut is a terminal, where it would tear
// the live view.
func ProgramPrinter(errOut io.Writer) Printer {
	mirror := !isTerminal(errOut)
	return func(text string, isErr bool, next tea.Cmd) tea.Cmd {
		if isErr && mirror {
			fmt.Fprintln(errOut, strings.TrimRight(text, "\n"))
		}
		return tea.Sequence(tea.Println(text), next)
	}
}

// WriterPrinter writes straight to out and errOut. Use it when no
// tea.Program owns the terminal.
func WriterPrinter(out, errOut io.Writer) Printer {
	return func(text string, isErr bool, next tea.Cmd) tea.Cmd {
		if isErr {
			fmt.Fprintln(errOut, text)
		} else {
			fmt.Fprintln(out, text)
		}
		return next
	}
}

// Model is the interactive session. Every transition goes through Update,
// driven by key presses or by ActionSelectedMsg and InputSubmittedMsg.
type Model struct {
	ctx    context.Context
	router *router.Router
	cfg    generator.Config
	print  Printer

	state   router.State
	choices []router.Choice
	cursor  int
	action  router.Action
	input   textinput.Model
	notice  string
	err     error
}

// NewModel returns a session waiting at the action menu.
func NewModel(ctx context.Context, r *router.Router, cfg generator.Config, p Printer) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.PromptStyle = questionStyle

	return Model{
		ctx:     ctx,
		router:  r,
		cfg:     cfg,
		print:   p,
		state:   router.Idle,
		choices: router.Actions(),
		input:   ti,
	}
}

// State returns the current step of the command cycle.
func (m Model) State() router.State { return m.state }

// Err returns the error the session ended with, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case ActionSelectedMsg:
		cmd = m.selectAction(msg.Action)
	case InputSubmittedMsg:
		cmd = m.submit(msg.Value)
	case outcomeMsg:
		cmd = m.report(router.Outcome(msg))
	case reportedMsg:
		m.reset()
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, quitKey) {
		m.state = router.Terminated
		m.err = clierr.New(clierr.CodeInterrupted, "interrupted")
		return tea.Quit
	}

	switch m.state {
	case router.Idle:
		switch {
		case key.Matches(msg, menuKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, menuKeys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, menuKeys.Select):
			return m.selectAction(m.choices[m.cursor].Action)
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			if n := int(msg.Runes[0] - '1'); n >= 0 && n < len(m.choices) {
				m.cursor = n
			}
		}
		return nil

	case router.AwaitingArgs:
		switch {
		case key.Matches(msg, inputKeys.Back):
			m.reset()
			return nil
		case key.Matches(msg, inputKeys.Submit):
			return m.submit(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) selectAction(a router.Action) tea.Cmd {
	if m.state != router.Idle {
		return nil
	}
	for i, c := range m.choices {
		if c.Action == a {
			m.cursor = i
		}
	}

	if a == router.ActionExit {
		m.state = router.Terminated
		return m.print("\n"+bannerStyle.Render(farewell)+"\n", false, tea.Quit)
	}

	m.action = a
	m.state = router.AwaitingArgs
	m.notice = ""
	m.input.Reset()
	m.input.Prompt = "? " + m.question() + " "
	return m.input.Focus()
}

func (m *Model) submit(value string) tea.Cmd {
	if m.state != router.AwaitingArgs {
		return nil
	}
	if err := m.check(value); err != nil {
		m.notice = err.Error()
		return nil
	}

	m.notice = ""
	m.state = router.Dispatching
	m.input.Blur()
	return dispatch(m.ctx, m.router, m.action, m.cfg, value)
}

func (m *Model) check(value string) error {
	switch m.action {
	case router.ActionInit:
		_, err := validate.ProjectName(value)
		return err
	default:
		_, err := generator.NewRequest(value)
		return err
	}
}

func (m *Model) report(o router.Outcome) tea.Cmd {
	m.state = router.Reporting
	text, isErr := router.Report(o)
	return m.print(text+"\n", isErr, func() tea.Msg { return reportedMsg{} })
}

func (m *Model) reset() {
	m.state = router.Idle
	m.action = ""
	m.notice = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) question() string {
	if m.action == router.ActionInit {
		return questionName
	}
	return questionPrompt
}

func dispatch(ctx context.Context, r *router.Router, a router.Action, cfg generator.Config, arg string) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(r.Dispatch(ctx, a, cfg, arg))
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	switch m.state {
	case router.Idle:
		b.WriteString(markStyle.Render("?") + " " + questionStyle.Render(questionAction) + "\n")
		for i, c := range m.choices {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("❯ "+c.Label) + "\n")
			} else {
				b.WriteString("  " + c.Label + "\n")
			}
		}
		b.WriteString(helpStyle.Render(helpLine(menuKeys.Up, menuKeys.Down, menuKeys.Select, quitKey)))
	case router.AwaitingArgs:
		b.WriteString(m.input.View() + "\n")
		if m.notice != "" {
			b.WriteString(noticeStyle.Render(">> "+m.notice) + "\n")
		}
		b.WriteString(helpStyle.Render(helpLine(inputKeys.Submit, inputKeys.Back, quitKey)))
	case router.Dispatching:
		if m.action == router.ActionInit {
			b.WriteString(helpStyle.Render("Creating project..."))
		} else {
			b.WriteString(helpStyle.Render(fmt.Sprintf("Generating code with %s...", m.cfg.Model)))
		}
	}
	return b.String()
}

// Prompt is the plain-text prompt for line-driven sessions.
func (m Model) Prompt() string {
	var b strings.Builder
	switch m.state {
	case router.Idle:
		b.WriteString("? " + questionAction + "\n")
		for i, c := range m.choices {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, c.Label)
		}
		b.WriteString("> ")
	case router.AwaitingArgs:
		if m.notice != "" {
			b.WriteString(">> " + m.notice + "\n")
		}
		b.WriteString("? " + m.question() + " ")
	}
	return b.String()
}

// Banner is printed once when a session starts.
func Banner() string {
	return "\n" + bannerStyle.Render(branding.DisplayName()+" Interactive Mode") + "\n" +
		helpStyle.Render(`Type "exit" to quit`) + "\n"
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
