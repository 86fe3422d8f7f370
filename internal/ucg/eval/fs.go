// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"os"
	"path/filepath"
)

// readFile is a thin indirection over os.ReadFile so import resolution
// has a single seam: file I/O happens only during import resolution.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// canonicalizePath resolves ".." segments and symlinks in an already
// absolute path.
func canonicalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
