package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/py-lama/jslama/internal/branding"
	"github.com/py-lama/jslama/internal/generator"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the config file, env vars, and flags.
const (
	KeyModel       = "model"
	KeyTemperature = "temperature"
	KeyVerbose     = "verbose"
)

// Keys returns the supported keys in sorted order.
func Keys() []string {
	keys := []string{KeyModel, KeyTemperature, KeyVerbose}
	sort.Strings(keys)
	return keys
}

// Dir returns the path to the DevLama config directory. DEVLAMA_HOME
// overrides the default of ~/.devlama.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.devlama/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// ParseError reports a config file that exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("reading config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Settings is a loaded configuration. The CLI binds its global flags into
// Viper() so flag values win over file and environment values.
type Settings struct {
	v *viper.Viper
}

// Load reads the config file and environment. A missing config file is not
// an error. A file that cannot be parsed yields a *ParseError together with
// Settings built from defaults and environment only.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyModel, branding.DefaultModel())
	v.SetDefault(KeyTemperature, generator.DefaultTemperature)
	v.SetDefault(KeyVerbose, false)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return &Settings{v: v}, &ParseError{Path: FilePath(), Err: err}
		}
		return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return &Settings{v: v}, nil
}

// Viper exposes the underlying instance for flag binding.
func (s *Settings) Viper() *viper.Viper { return s.v }

// Get returns a config value by key. Returns empty string if not set.
func (s *Settings) Get(key string) string {
	return s.v.GetString(key)
}

// Generation builds the immutable generation config from the layered values.
func (s *Settings) Generation() (generator.Config, error) {
	return generator.NewConfig(
		s.v.GetString(KeyModel),
		s.v.GetFloat64(KeyTemperature),
		s.v.GetBool(KeyVerbose),
	)
}

// BackupPath is where Set moves a config file it cannot parse.
func BackupPath() string {
	return FilePath() + ".bak"
}

// Set validates value for key and writes it to the config file. Only the
// file's own contents are persisted; flag and env values are not. A file
// that cannot be parsed is moved to BackupPath and replaced.
func Set(key, value string) error {
	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	fv := viper.New()
	fv.SetConfigFile(configFile)
	fv.SetConfigType(fileType)
	if err := fv.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if !errors.As(err, &parseErr) {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		if err := os.Rename(configFile, BackupPath()); err != nil {
			return fmt.Errorf("backing up unreadable config file: %w", err)
		}
		fv = viper.New()
		fv.SetConfigType(fileType)
	}

	fv.Set(key, typed)
	if err := fv.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// parseValue converts the textual value for key into its stored type.
func parseValue(key, value string) (any, error) {
	switch strings.ToLower(key) {
	case KeyModel:
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("model cannot be empty")
		}
		return strings.TrimSpace(value), nil
	case KeyTemperature:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("temperature must be a number: %w", err)
		}
		if _, err := generator.NewConfig(branding.DefaultModel(), f, false); err != nil {
			return nil, err
		}
		return f, nil
	case KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("verbose must be true or false: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
}
