// Package branding provides compile-time identity values for the CLI.
//
// Edit branding.yaml next to this file to rename the tool; Go's //go:embed
// bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubRepo   string `yaml:"github_repo"`
	DefaultModel string `yaml:"default_model"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "devlama",
			DisplayName:  "DevLama",
			Description:  "AI-powered development assistant for code generation and assistance",
			HomeDir:      ".devlama",
			EnvPrefix:    "DEVLAMA",
			GoModule:     "github.com/py-lama/jslama",
			GitHubRepo:   "py-lama/devlama",
			DefaultModel: "codellama",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "devlama").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "DevLama").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".devlama").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DEVLAMA").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string (e.g., "py-lama/devlama").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RepoURL returns the project homepage linked from generated READMEs.
func RepoURL() string { return "https://github.com/" + GitHubRepo() }

// DefaultModel returns the model name used when none is configured.
func DefaultModel() string { load(); return defaults.DefaultModel }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "DEVLAMA_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
