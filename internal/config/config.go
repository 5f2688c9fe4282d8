// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-importer/internal/locale"
	"github.com/jonathan/resume-importer/internal/parsing"
)

const (
	// IDsUUID assigns random UUIDs to entries
	IDsUUID = "uuid"
	// IDsSequential assigns IDPrefix1, IDPrefix2, ... per draft
	IDsSequential = "sequential"

	DefaultConcurrency = 4
	DefaultPort        = 8080

	// Environment variables consulted by Defaults
	EnvLocale = "RESUME_IMPORT_LOCALE"
	EnvPort   = "PORT"
)

// Config represents the importer configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Parsing
	Locale     string `json:"locale,omitempty" yaml:"locale,omitempty"`           // Embedded locale name
	LocaleFile string `json:"locale_file,omitempty" yaml:"locale_file,omitempty"` // Path to a custom locale YAML file
	IDs        string `json:"ids,omitempty" yaml:"ids,omitempty" validate:"omitempty,oneof=uuid sequential"`
	IDPrefix   string `json:"id_prefix,omitempty" yaml:"id_prefix,omitempty" validate:"max=32"`

	// Output
	OutDir         string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"` // Directory for draft files; stdout when empty
	Format         string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=text html"`
	Full           bool   `json:"full,omitempty" yaml:"full,omitempty"`         // Emit the merged full record instead of the draft
	ValidateOutput bool   `json:"validate,omitempty" yaml:"validate,omitempty"` // Validate output against the embedded schema

	// Behavior
	Concurrency int  `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0,lte=64"`
	Verbose     bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their file keys
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the built-in defaults, overridden by RESUME_IMPORT_LOCALE and PORT.
func Defaults() Config {
	cfg := Config{
		Locale:      locale.DefaultName,
		IDs:         IDsUUID,
		Concurrency: DefaultConcurrency,
		Port:        DefaultPort,
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (use .json, .yaml or .yml)", ext)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Locale != "" && c.LocaleFile != "" {
		return fmt.Errorf("config error: 'locale' and 'locale_file' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (got %v)", fe.Field(), fe.ActualTag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.LocaleFile != "" {
		if _, err := os.Stat(c.LocaleFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: locale file not found: %s", c.LocaleFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// A custom locale file replaces the default locale name
	if result.Locale == "" && result.LocaleFile == "" {
		result.Locale = defaults.Locale
		result.LocaleFile = defaults.LocaleFile
	}
	if result.IDs == "" {
		result.IDs = defaults.IDs
	}
	if result.IDPrefix == "" {
		result.IDPrefix = defaults.IDPrefix
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: a true default turns the feature on
	result.Full = result.Full || defaults.Full
	result.ValidateOutput = result.ValidateOutput || defaults.ValidateOutput
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// LoadLocale resolves the configured locale, preferring LocaleFile over Locale.
func (c *Config) LoadLocale() (*locale.Locale, error) {
	if c.LocaleFile != "" {
		return locale.LoadFile(c.LocaleFile)
	}
	if c.Locale == "" {
		return locale.Default(), nil
	}
	return locale.Load(c.Locale)
}

// IDFactory returns the parser ID source factory for the configured ID scheme.
func (c *Config) IDFactory() func() parsing.IDSource {
	if c.IDs == IDsSequential {
		return parsing.SequentialIDs(c.IDPrefix)
	}
	return parsing.NewUUIDSource
}
