// Package version normalizes the build version injected at link time.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Fallback is reported when the binary was built without a release version.
const Fallback = "0.1.0"

// Canonical parses v (tolerating a leading "v") and returns it in
// MAJOR.MINOR.PATCH form, keeping any prerelease or metadata suffix.
func Canonical(v string) (string, error) {
	sv, err := parseSemver(v)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", v, err)
	}
	return sv.String(), nil
}

// OrFallback returns Canonical(v), or Fallback when v is not a version
// (e.g., "dev" builds).
func OrFallback(v string) string {
	c, err := Canonical(v)
	if err != nil {
		return Fallback
	}
	return c
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}

// Satisfies reports whether v meets constraint (e.g. ">= 18.0.0").
func Satisfies(v, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	sv, err := parseSemver(v)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", v, err)
	}
	return c.Check(sv), nil
}
