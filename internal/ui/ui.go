// Package ui formats the colored one-line messages the CLI prints: success
// checkmarks, error prefixes, and section headers. Color is dropped
// automatically when output is not a terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Checkmark prefixes successful results.
const Checkmark = "✓"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	blue  = color.New(color.FgBlue).SprintFunc()
	warn  = color.New(color.FgYellow).SprintFunc()
)

// Header renders a section title such as "Generated code:".
func Header(text string) string { return green(text) }

// Info renders an informational banner line.
func Info(text string) string { return blue(text) }

// SuccessLine renders "✓ msg".
func SuccessLine(msg string) string { return green(Checkmark) + " " + msg }

// ErrorLine renders "Error: msg".
func ErrorLine(msg string) string { return red("Error:") + " " + msg }

// WarningLine renders "  - msg" for a non-fatal issue.
func WarningLine(msg string) string { return warn("  - ") + msg }

// Error writes ErrorLine(err.Error()) and a newline to w.
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorLine(err.Error()))
}
