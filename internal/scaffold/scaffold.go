package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/manifest"
	"github.com/py-lama/jslama/internal/validate"
)

// Generated file names, in write order.
const (
	PackageFile = "package.json"
	ReadmeFile  = "README.md"
	EntryFile   = "index.js"
)

// ErrDirectoryExists matches any *ExistsError via errors.Is.
var ErrDirectoryExists = errors.New("directory already exists")

// ExistsError is returned when the project path is already taken by a file
// or directory.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("Directory %s already exists", e.Path)
}

func (e *ExistsError) Is(target error) bool { return target == ErrDirectoryExists }

// Descriptor identifies the project to create.
type Descriptor struct {
	Name       string
	TargetPath string // absolute
}

// NewDescriptor validates name and resolves it against baseDir.
func NewDescriptor(baseDir, name string) (Descriptor, error) {
	clean, err := validate.ProjectName(name)
	if err != nil {
		return Descriptor{}, err
	}
	target, err := filepath.Abs(filepath.Join(baseDir, clean))
	if err != nil {
		return Descriptor{}, fmt.Errorf("resolving project path: %w", err)
	}
	return Descriptor{Name: clean, TargetPath: target}, nil
}

// Result holds the outcome of a Create call.
type Result struct {
	Success  bool
	Path     string
	Message  string
	Files    []string
	Warnings []string
}

// templateData holds the variables available to the file templates.
type templateData struct {
	Name    string
	Product string
	RepoURL string
}

type projectFile struct {
	name   string
	render func(templateData) ([]byte, error)
}

var projectFiles = []projectFile{
	{PackageFile, renderPackage},
	{ReadmeFile, renderTemplate("README.md.tmpl")},
	{EntryFile, renderTemplate("index.js.tmpl")},
}

// Scaffolder creates projects on the local filesystem.
type Scaffolder struct {
	logger    *log.Logger
	writeFile func(name string, data []byte, perm fs.FileMode) error
	stageName func() string
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithLogger routes debug output about staging and commit to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scaffolder) { s.logger = logger }
}

// New returns a Scaffolder that writes with os.WriteFile.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{
		logger:    log.New(io.Discard),
		writeFile: os.WriteFile,
		stageName: func() string {
			return ".devlama-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create builds the project described by d. It fails with an *ExistsError if
// d.TargetPath is already present and leaves that entry untouched. Files are
// written to a sibling staging directory which is renamed onto the target
// only after every file has been written.
func (s *Scaffolder) Create(ctx context.Context, d Descriptor) (*Result, error) {
	name, err := validate.ProjectName(d.Name)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(d.TargetPath) {
		return nil, fmt.Errorf("project path %q is not absolute", d.TargetPath)
	}
	target := filepath.Clean(d.TargetPath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkAbsent(target); err != nil {
		return nil, err
	}

	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("creating parent directory %s: %w", parent, err)
	}

	staging := filepath.Join(parent, s.stageName())
	if err := os.Mkdir(staging, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rmErr := os.RemoveAll(staging); rmErr != nil {
				s.logger.Warn("could not remove staging directory", "path", staging, "err", rmErr)
			}
		}
	}()
	s.logger.Debug("staging project", "name", name, "staging", staging)

	data := templateData{
		Name:    name,
		Product: branding.DisplayName(),
		RepoURL: branding.RepoURL(),
	}

	result := &Result{Path: target}
	for _, f := range projectFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := f.render(data)
		if err != nil {
			return nil, err
		}
		if err := s.writeFile(filepath.Join(staging, f.name), content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
		result.Files = append(result.Files, f.name)
	}

	result.Warnings = manifestWarnings(filepath.Join(staging, PackageFile))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// The target may have appeared while staging.
	if err := checkAbsent(target); err != nil {
		return nil, err
	}
	if err := os.Rename(staging, target); err != nil {
		if _, statErr := os.Lstat(target); statErr == nil {
			return nil, &ExistsError{Path: target}
		}
		return nil, fmt.Errorf("moving project into place: %w", err)
	}
	committed = true
	s.logger.Debug("project committed", "path", target)

	result.Success = true
	result.Message = fmt.Sprintf("Project %s created successfully at %s", name, target)
	return result, nil
}

// checkAbsent fails if anything exists at path.
func checkAbsent(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return &ExistsError{Path: path}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// manifestWarnings validates the generated package.json. Schema issues are
// warnings; the project is still created.
func manifestWarnings(path string) []string {
	res, err := manifest.ValidateFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", PackageFile, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, PackageFile+" "+issue.String())
	}
	return warnings
}

func renderPackage(d templateData) ([]byte, error) {
	return manifest.NewPackage(d.Name).Marshal()
}

func renderTemplate(file string) func(templateData) ([]byte, error) {
	return func(d templateData) ([]byte, error) {
		raw, err := fs.ReadFile(templateFS, "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", file, err)
		}
		tmpl, err := template.New(file).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, d); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", file, err)
		}
		return buf.Bytes(), nil
	}
}
