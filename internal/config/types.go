// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// ColorAuto highlights only when stdout is a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI highlighting.
	ColorAlways ColorMode = "always"
	// ColorNever disables highlighting.
	ColorNever ColorMode = "never"
)

var (
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidFortuneSource is returned when a fortune source path is blank.
	ErrInvalidFortuneSource = errors.New("invalid fortune source")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorMode controls ANSI highlighting in grep and styled CLI output.
	ColorMode string

	// InvalidColorModeError wraps ErrInvalidColorMode for errors.Is() compatibility.
	InvalidColorModeError struct {
		Value ColorMode
	}

	// InvalidFortuneSourceError wraps ErrInvalidFortuneSource.
	InvalidFortuneSourceError struct {
		Index int
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the root configuration.
	Config struct {
		UI      UIConfig      `json:"ui" mapstructure:"ui" toml:"ui"`
		Shell   ShellConfig   `json:"shell" mapstructure:"shell" toml:"shell"`
		Fortune FortuneConfig `json:"fortune" mapstructure:"fortune" toml:"fortune"`
	}

	// UIConfig configures logging verbosity and output colors.
	UIConfig struct {
		Verbose bool      `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		Color   ColorMode `json:"color" mapstructure:"color" toml:"color"`
	}

	// ShellConfig configures the embedded shell.
	ShellConfig struct {
		// EnableBuiltins dispatches registered utility names in-process
		// instead of running host executables.
		EnableBuiltins bool `json:"enable_builtins" mapstructure:"enable_builtins" toml:"enable_builtins"`
	}

	// FortuneConfig lists default fortune sources, exported as FORTUNE_PATH.
	FortuneConfig struct {
		Sources []string `json:"sources" mapstructure:"sources" toml:"sources"`
	}
)

func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

func (e *InvalidColorModeError) Unwrap() error { return ErrInvalidColorMode }

func (e *InvalidFortuneSourceError) Error() string {
	return fmt.Sprintf("fortune.sources[%d]: path must not be blank", e.Index)
}

func (e *InvalidFortuneSourceError) Unwrap() error { return ErrInvalidFortuneSource }

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is/As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func (m ColorMode) String() string { return string(m) }

// IsValid returns whether the ColorMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m ColorMode) IsValid() (bool, []error) {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true, nil
	default:
		return false, []error{&InvalidColorModeError{Value: m}}
	}
}

// IsValid validates the fields that survive Viper environment overrides,
// which bypass the CUE schema.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.Color.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for i, src := range c.Fortune.Sources {
		if strings.TrimSpace(src) == "" {
			errs = append(errs, &InvalidFortuneSourceError{Index: i})
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// FortunePath joins the configured fortune sources into a FORTUNE_PATH value.
func (c FortuneConfig) FortunePath() string {
	return strings.Join(c.Sources, string(os.PathListSeparator))
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose: false,
			Color:   ColorAuto,
		},
		Shell: ShellConfig{
			EnableBuiltins: true,
		},
		Fortune: FortuneConfig{
			Sources: []string{},
		},
	}
}
