// Package xdg resolves XDG Base Directory paths for nhdbstats.
// It falls back to the traditional ~/.config location when XDG_CONFIG_HOME
// is unset.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used below the XDG base directories.
const AppName = "nhdbstats"

// ConfigDir returns the XDG config directory for nhdbstats without creating it.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}
