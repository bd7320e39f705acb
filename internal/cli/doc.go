// Package cli defines the Cobra command tree for the devlama CLI. Each file
// in this package builds one top-level command (generate, init, interactive,
// etc.) and NewRootCmd wires them together. Command implementations delegate
// to internal packages for business logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
