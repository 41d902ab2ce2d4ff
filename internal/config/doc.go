// SPDX-License-Identifier: MPL-2.0

// Package config handles textutils configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config file when given, otherwise from
// textutils/config.cue under the user config directory ($XDG_CONFIG_HOME or
// ~/.config on Linux, ~/Library/Application Support on macOS, %APPDATA% on
// Windows), falling back to ./config.cue. Every file is validated against the
// embedded config_schema.cue before being merged over the defaults.
package config
