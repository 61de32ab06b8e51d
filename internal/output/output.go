// Package output owns the generated tree on disk. Every build starts
// from a clean slate: the previous output root is removed wholesale
// so stale modules from an older spec tree can never leak into a new
// build.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Reset removes the output root if it exists and recreates it empty.
// A missing root is not an error, so the call is idempotent. Roots
// that would wipe the working tree or the filesystem are refused.
func Reset(root string) error {
	if root == "" {
		return errors.New("output root not configured")
	}
	switch filepath.Clean(root) {
	case "/", ".", "..":
		return fmt.Errorf("refusing to reset output root %q", root)
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("clear output root %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create output root %s: %w", root, err)
	}
	return nil
}

// Write persists one generated file, creating parent directories as
// needed.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
