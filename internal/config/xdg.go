// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "catchme"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}
