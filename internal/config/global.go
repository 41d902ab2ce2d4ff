// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform lookup in ConfigDir when set.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir. Tests use it because
// os.UserHomeDir does not honor HOME on every platform.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset restores the platform lookup.
func Reset() {
	SetConfigDirOverride("")
}
