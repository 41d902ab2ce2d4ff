// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration is read from. The zero value
	// uses the platform config directory, then ./config.cue.
	LoadOptions struct {
		// ConfigFilePath is the --config flag; it must exist when set.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory.
		ConfigDirPath string
		// WorkDir is searched for config.cue; empty means the process
		// working directory.
		WorkDir string
	}

	// Provider loads configuration. The CLI depends on this interface so
	// that tests can inject fixed configurations.
	Provider interface {
		// Load returns the effective configuration and the file it came
		// from, or "" when only defaults and environment overrides apply.
		Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
	}

	fileProvider struct{}
)

// NewProvider returns the Provider backed by CUE files and TEXTUTILS_*
// environment variables.
func NewProvider() Provider {
	return fileProvider{}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
