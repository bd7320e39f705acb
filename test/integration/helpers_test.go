//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/py-lama/jslama/internal/cli"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // DEVLAMA_HOME, holds config.yaml
	ProjectDir string // working directory for init
}

// setupTestEnv creates isolated temp directories and points DEVLAMA_HOME and
// the working directory at them. Both are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("DEVLAMA_HOME", env.HomeDir)
	for _, key := range []string{"DEVLAMA_MODEL", "DEVLAMA_TEMPERATURE", "DEVLAMA_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(env.ProjectDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	if wd, err := os.Getwd(); err == nil {
		env.ProjectDir = wd
	}
	return env
}

// cliResult captures one invocation of the command tree.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes a fresh command tree with args, feeding stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("0.1.0", "test", "today")
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// mustRun is runCLI that fails the test on error.
func mustRun(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	res := runCLI(t, stdin, args...)
	if res.Err != nil {
		t.Fatalf("devlama %s: %v\nstdout:\n%s\nstderr:\n%s", strings.Join(args, " "), res.Err, res.Stdout, res.Stderr)
	}
	return res
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertContains fails if content doesn't contain substr.
func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected output to contain %q\n\nGot:\n%s", substr, content)
	}
}
