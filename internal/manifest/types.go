package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Defaults written into every new project manifest.
const (
	DefaultVersion     = "0.1.0"
	DefaultDescription = "Project generated with DevLama"
	DefaultMain        = "index.js"
	DefaultLicense     = "MIT"
	DefaultTestScript  = `echo "Error: no test specified" && exit 1`
)

// PackageManifest is the package.json written by the scaffolder. Field order
// matches the order the keys appear in the generated file.
type PackageManifest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
	Keywords    []string          `json:"keywords"`
	Author      string            `json:"author"`
	License     string            `json:"license"`
}

// NewPackage returns the default manifest for a project called name.
func NewPackage(name string) *PackageManifest {
	return &PackageManifest{
		Name:        name,
		Version:     DefaultVersion,
		Description: DefaultDescription,
		Main:        DefaultMain,
		Scripts: map[string]string{
			"start": "node " + DefaultMain,
			"test":  DefaultTestScript,
		},
		Keywords: []string{},
		Author:   "",
		License:  DefaultLicense,
	}
}

// Marshal renders the manifest with two-space indentation and no trailing
// newline. HTML characters are left unescaped so scripts stay readable.
func (m *PackageManifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding package manifest: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Parse decodes package.json bytes.
func Parse(data []byte) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}
	return &m, nil
}

// ParseFile reads and decodes a package.json file.
func ParseFile(path string) (*PackageManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
