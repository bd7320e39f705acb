// Package runtime locates the JavaScript toolchain that generated projects
// run on. It only inspects the machine and never installs anything.
package runtime
