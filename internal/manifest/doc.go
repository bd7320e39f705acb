// Package manifest builds, parses, and validates the package.json manifest
// written into scaffolded projects. Validation runs against an embedded JSON
// Schema describing the subset of the npm manifest format DevLama produces.
package manifest
