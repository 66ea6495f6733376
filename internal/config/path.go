// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR environment references in a
// file path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns where the blob database lives unless the
// config overrides it.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "spendsense.db"
	}
	return filepath.Join(home, ".local", "share", "spendsense", "spendsense.db")
}
