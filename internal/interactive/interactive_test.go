package interactive

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/py-lama/jslama/internal/clierr"
	"github.com/py-lama/jslama/internal/generator"
	"github.com/py-lama/jslama/internal/router"
	"github.com/py-lama/jslama/internal/scaffold"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestMenuNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = drive(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor after down = %d, want 1", m.cursor)
	}
	m = drive(m, tea.KeyMsg{Type: tea.KeyDown})
	m = drive(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor should stop at the last entry, got %d", m.cursor)
	}
	m = drive(m, keyRunes("1"))
	if m.cursor != 0 {
		t.Errorf("cursor after '1' = %d, want 0", m.cursor)
	}
	m = drive(m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should stop at the first entry, got %d", m.cursor)
	}
	if m.State() != router.Idle {
		t.Errorf("navigation changed state to %s", m.State())
	}
	if !strings.Contains(m.View(), "❯ Generate code") {
		t.Errorf("View() should highlight the cursor entry:\n%s", m.View())
	}
}

func TestGenerateWithKeys(t *testing.T) {
	m, out, _ := newTestModel(t)

	m = drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != router.AwaitingArgs {
		t.Fatalf("state after enter = %s, want awaiting-args", m.State())
	}
	m = typeText(m, "add two numbers")
	if !strings.Contains(m.View(), "Describe the code you want to generate:") {
		t.Errorf("View() should show the prompt question:\n%s", m.View())
	}

	m = drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != router.Idle {
		t.Fatalf("state after dispatch = %s, want idle", m.State())
	}
	assertContains(t, out.String(), "Generated code:")
	assertContains(t, out.String(), "// add two numbers")
	assertContains(t, out.String(), "// Generated by DevLama with model: codellama")
}

func TestDispatchStates(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(ActionSelectedMsg{Action: router.ActionGenerate})
	m = next.(Model)
	next, cmd := m.Update(InputSubmittedMsg{Value: "hello"})
	m = next.(Model)
	if m.State() != router.Dispatching {
		t.Fatalf("state after submit = %s, want dispatching", m.State())
	}
	if cmd == nil {
		t.Fatal("submit should return a dispatch command")
	}
	if !strings.Contains(m.View(), "Generating code with codellama") {
		t.Errorf("View() while dispatching = %q", m.View())
	}

	next, cmd = m.Update(cmd())
	m = next.(Model)
	if m.State() != router.Reporting {
		t.Fatalf("state after outcome = %s, want reporting", m.State())
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.State() != router.Idle {
		t.Errorf("state after report = %s, want idle", m.State())
	}
}

func TestEmptyInputReprompts(t *testing.T) {
	tests := []struct {
		action router.Action
		notice string
	}{
		{router.ActionGenerate, "Prompt cannot be empty"},
		{router.ActionInit, "Project name is required"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			m, out, _ := newTestModel(t)
			m = drive(m, ActionSelectedMsg{Action: tt.action})
			m = drive(m, InputSubmittedMsg{Value: "   "})

			if m.State() != router.AwaitingArgs {
				t.Fatalf("state = %s, want awaiting-args", m.State())
			}
			assertContains(t, m.Prompt(), ">> "+tt.notice)
			assertContains(t, m.View(), tt.notice)
			if out.Len() != 0 {
				t.Errorf("nothing should be printed on re-prompt, got %q", out.String())
			}
		})
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = drive(m, ActionSelectedMsg{Action: router.ActionInit})
	m = typeText(m, "half")
	m = drive(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.State() != router.Idle {
		t.Fatalf("state after esc = %s, want idle", m.State())
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
}

func TestCtrlCInterrupts(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = drive(m, ActionSelectedMsg{Action: router.ActionGenerate})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if m.State() != router.Terminated {
		t.Fatalf("state = %s, want terminated", m.State())
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit the program")
	}
	if got := clierr.ExitCodeOf(m.Err()); got != clierr.CodeInterrupted {
		t.Errorf("exit code = %d, want %d", got, clierr.CodeInterrupted)
	}
}

func TestExitSaysGoodbye(t *testing.T) {
	m, out, _ := newTestModel(t)
	m = drive(m, ActionSelectedMsg{Action: router.ActionExit})

	if m.State() != router.Terminated {
		t.Fatalf("state = %s, want terminated", m.State())
	}
	if m.Err() != nil {
		t.Errorf("Err() = %v, want nil", m.Err())
	}
	assertContains(t, out.String(), "Goodbye! 👋")
}

func TestRunLinesSession(t *testing.T) {
	dir := t.TempDir()
	m, out, errOut := newTestModelIn(t, dir)
	in := strings.NewReader("1\nhello world\ninit\ndemo\nexit\n")

	if err := RunLines(context.Background(), m, in, out); err != nil {
		t.Fatalf("RunLines() error: %v", err)
	}

	got := out.String()
	assertContains(t, got, "? What would you like to do?")
	assertContains(t, got, "  2) Create new project")
	assertContains(t, got, "? Describe the code you want to generate:")
	assertContains(t, got, "// hello world")
	assertContains(t, got, "? Project name:")
	assertContains(t, got, "✓ Project demo created successfully at "+filepath.Join(dir, "demo"))
	assertContains(t, got, "Goodbye! 👋")
	if errOut.Len() != 0 {
		t.Errorf("unexpected error output: %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "demo", "package.json")); err != nil {
		t.Errorf("project was not created: %v", err)
	}
}

func TestRunLinesContinuesAfterError(t *testing.T) {
	dir := t.TempDir()
	m, out, errOut := newTestModelIn(t, dir)
	in := strings.NewReader("init\n\ndemo\nCreate new project\ndemo\n3\n")

	if err := RunLines(context.Background(), m, in, out); err != nil {
		t.Fatalf("RunLines() error: %v", err)
	}
	assertContains(t, out.String(), ">> Project name is required")
	assertContains(t, errOut.String(), "Error: Directory "+filepath.Join(dir, "demo")+" already exists")
	assertContains(t, out.String(), "Goodbye! 👋")
}

func TestRunLinesUnknownChoice(t *testing.T) {
	m, out, _ := newTestModel(t)
	in := strings.NewReader("bogus\n9\nexit\n")

	if err := RunLines(context.Background(), m, in, out); err != nil {
		t.Fatalf("RunLines() error: %v", err)
	}
	assertContains(t, out.String(), `Error: unknown action "bogus"`)
	assertContains(t, out.String(), "Error: choose a number between 1 and 3")
}

func TestRunLinesEndOfInput(t *testing.T) {
	t.Run("at menu", func(t *testing.T) {
		m, out, _ := newTestModel(t)
		if err := RunLines(context.Background(), m, strings.NewReader(""), out); err != nil {
			t.Fatalf("RunLines() error: %v", err)
		}
		assertContains(t, out.String(), "Goodbye! 👋")
	})

	t.Run("mid prompt", func(t *testing.T) {
		m, out, _ := newTestModel(t)
		err := RunLines(context.Background(), m, strings.NewReader("generate\n"), out)
		if err == nil {
			t.Fatal("expected an error when input ends at a prompt")
		}
		if got := clierr.ExitCodeOf(err); got != clierr.CodeFailure {
			t.Errorf("exit code = %d, want %d", got, clierr.CodeFailure)
		}
	})
}

func TestRunLinesCancelled(t *testing.T) {
	m, out, _ := newTestModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunLines(ctx, m, strings.NewReader("exit\n"), out)
	if got := clierr.ExitCodeOf(err); got != clierr.CodeInterrupted {
		t.Errorf("exit code = %d, want %d (err=%v)", got, clierr.CodeInterrupted, err)
	}
}

func TestRunWithoutTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Run(context.Background(), Options{
		Router: router.New(generator.NewStub(nil), scaffold.New(), router.WithWorkingDir(t.TempDir())),
		Config: generator.DefaultConfig(),
		In:     strings.NewReader("generate\nsort a list\nexit\n"),
		Out:    &out,
		ErrOut: &errOut,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	assertContains(t, out.String(), "DevLama Interactive Mode")
	assertContains(t, out.String(), `Type "exit" to quit`)
	assertContains(t, out.String(), "// sort a list")
}

func TestAskName(t *testing.T) {
	var out bytes.Buffer
	name, err := AskName(context.Background(), strings.NewReader("\n  \n  my-app  \n"), &out)
	if err != nil {
		t.Fatalf("AskName() error: %v", err)
	}
	if name != "my-app" {
		t.Errorf("AskName() = %q, want %q", name, "my-app")
	}
	if n := strings.Count(out.String(), ">> Project name is required"); n != 2 {
		t.Errorf("expected 2 re-prompts, got %d in %q", n, out.String())
	}
}

func TestAskNameEndOfInput(t *testing.T) {
	var out bytes.Buffer
	if _, err := AskName(context.Background(), strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error on empty input")
	}
}

func TestReadersStopOnCancelWhileBlocked(t *testing.T) {
	m, _, _ := newTestModel(t)
	tests := []struct {
		name string
		read func(ctx context.Context, in io.Reader) error
	}{
		{"AskName", func(ctx context.Context, in io.Reader) error {
			_, err := AskName(ctx, in, io.Discard)
			return err
		}},
		{"RunLines", func(ctx context.Context, in io.Reader) error {
			return RunLines(ctx, m, in, io.Discard)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			t.Cleanup(func() { pw.Close() })

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- tt.read(ctx, pr) }()

			time.Sleep(20 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				if got := clierr.ExitCodeOf(err); got != clierr.CodeInterrupted {
					t.Errorf("exit code = %d, want %d (err: %v)", got, clierr.CodeInterrupted, err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("reader did not return after cancel")
			}
		})
	}
}

func TestProgramPrinterMirrorsErrors(t *testing.T) {
	var errOut bytes.Buffer
	p := ProgramPrinter(&errOut)

	if cmd := p("Generated code:\n", false, nil); cmd == nil {
		t.Error("expected a print command")
	}
	if errOut.Len() != 0 {
		t.Errorf("regular output reached the error stream: %q", errOut.String())
	}

	if cmd := p("Error: Directory demo already exists\n", true, nil); cmd == nil {
		t.Error("expected a print command")
	}
	if got, want := errOut.String(), "Error: Directory demo already exists\n"; got != want {
		t.Errorf("error stream = %q, want %q", got, want)
	}
}

func TestParseChoice(t *testing.T) {
	choices := router.Actions()
	tests := []struct {
		in   string
		want router.Action
	}{
		{"1", router.ActionGenerate},
		{" 2 ", router.ActionInit},
		{"exit", router.ActionExit},
		{"generate code", router.ActionGenerate},
		{"Create new project", router.ActionInit},
	}
	for _, tt := range tests {
		got, err := parseChoice(tt.in, choices)
		if err != nil || got != tt.want {
			t.Errorf("parseChoice(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseChoice("0", choices); err == nil {
		t.Error("parseChoice(\"0\") should fail")
	}
}

// ─── Test Helpers ────────────────────────────────────────────────────────────

func newTestModel(t *testing.T) (Model, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return newTestModelIn(t, t.TempDir())
}

func newTestModelIn(t *testing.T, dir string) (Model, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	r := router.New(generator.NewStub(nil), scaffold.New(), router.WithWorkingDir(dir))
	m := NewModel(context.Background(), r, generator.DefaultConfig(), WriterPrinter(&out, &errOut))
	return m, &out, &errOut
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		if r == ' ' {
			m = drive(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m = drive(m, keyRunes(string(r)))
	}
	return m
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected output to contain %q\n\nGot:\n%s", substr, content)
	}
}
