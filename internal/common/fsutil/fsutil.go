// Package fsutil holds small filesystem helpers shared by the CLI and the
// config loader.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// FirstFile returns the first candidate that names an existing regular file,
// after '~' expansion. Candidates that cannot be expanded are skipped.
func FirstFile(candidates ...string) (string, bool) {
	for _, c := range candidates {
		p, err := ExpandHome(c)
		if err != nil || p == "" {
			continue
		}
		if IsFile(p) {
			return p, true
		}
	}
	return "", false
}

// ErrNotRegular is returned by CheckFile for directories and devices.
var ErrNotRegular = errors.New("not a regular file")

// CheckFile expands path and verifies it is a readable regular file.
func CheckFile(path string) (string, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", p, ErrNotRegular)
	}
	return p, nil
}
