// Package validate holds the input checks shared by the generator, the
// scaffolder, and the interactive prompts. All failures are reported as
// *Error so callers can tell recoverable input mistakes apart from I/O
// failures.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Error reports a rejected user input. Message is the user-facing text shown
// when re-prompting.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is a *Error for the same field, so sentinel
// values such as generator.ErrEmptyPrompt match any error for that field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Field == e.Field && (t.Message == "" || t.Message == e.Message)
}

// IsValidation reports whether err is, or wraps, a *Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// NonEmpty trims value and fails with message when nothing is left.
func NonEmpty(field, value, message string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &Error{Field: field, Message: message}
	}
	return trimmed, nil
}

// ProjectName checks that name can be used as a single directory entry.
// It returns the trimmed name.
func ProjectName(name string) (string, error) {
	trimmed, err := NonEmpty("projectName", name, "Project name is required")
	if err != nil {
		return "", err
	}

	if trimmed == "." || trimmed == ".." {
		return "", &Error{Field: "projectName", Message: fmt.Sprintf("Project name %q is not a valid directory name", trimmed)}
	}
	for _, r := range trimmed {
		if r == '/' || r == '\\' {
			return "", &Error{Field: "projectName", Message: fmt.Sprintf("Project name %q must not contain path separators", trimmed)}
		}
		if unicode.IsControl(r) {
			return "", &Error{Field: "projectName", Message: fmt.Sprintf("Project name %q must not contain control characters", trimmed)}
		}
	}
	return trimmed, nil
}
