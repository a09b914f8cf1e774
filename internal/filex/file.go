// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any parents) and returns its cleaned path.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return filepath.Clean(dir), nil
}

// DefaultDataDir returns the per-user data directory for the named app,
// creating it if missing. Falls back to a subdirectory of the working
// directory when the user config dir cannot be resolved.
func DefaultDataDir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
	}
	return EnsureDir(filepath.Join(base, app))
}
