// Package config manages user-level defaults stored at ~/.devlama/config.yaml.
// Values are layered: command-line flags over DEVLAMA_* environment variables
// over the config file over built-in defaults.
package config
