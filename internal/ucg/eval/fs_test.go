// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileReturnsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.ucg")
	require.NoError(t, os.WriteFile(path, []byte("out json 1;"), 0o644))

	got, err := readFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out json 1;", string(got))
}

func TestReadFileMissingIsError(t *testing.T) {
	_, err := readFile(filepath.Join(t.TempDir(), "missing.ucg"))
	assert.Error(t, err)
}

func TestCanonicalizePathResolvesDotDot(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	target := filepath.Join(dir, "f.ucg")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	messy := filepath.Join(sub, "..", "f.ucg")
	got, err := canonicalizePath(messy)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCanonicalizePathMissingIsError(t *testing.T) {
	_, err := canonicalizePath(filepath.Join(t.TempDir(), "missing.ucg"))
	assert.Error(t, err)
}
