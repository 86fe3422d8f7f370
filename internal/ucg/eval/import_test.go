// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ucg/internal/ucg/parser"
)

func TestEvalImportBindsOutputTuple(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.ucg"), []byte(`out json {v = 1};`), 0o644))

	stmts, err := parser.Parse("main.ucg", []byte(`import "lib.ucg" as lib; out json lib.v;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(dir, false, false)
	require.NoError(t, ev.EvalFile(stmts))
	assert.Equal(t, Int{Val: 1}, ev.Output)
}

func TestEvalImportWithoutOutputIsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.ucg"), []byte(`let v = 1;`), 0o644))

	stmts, err := parser.Parse("main.ucg", []byte(`import "lib.ucg" as lib; out json lib;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(dir, false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
}

func TestEvalImportIsIdempotentAcrossAliases(t *testing.T) {
	// Importing the same canonical path twice (e.g. via two different
	// relative spellings) binds both aliases to the same output tuple;
	// the second import is served from the import cache.
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.ucg"), []byte(`out json {v = 1};`), 0o644))

	stmts, err := parser.Parse("main.ucg", []byte(`import "lib.ucg" as a; import "./lib.ucg" as b; out json [a.v, b.v];`))
	require.NoError(t, err)
	ev := NewRootEvaluator(dir, false, false)
	require.NoError(t, ev.EvalFile(stmts))
	list := ev.Output.(*List)
	assert.Equal(t, []Value{Int{Val: 1}, Int{Val: 1}}, list.Elements)
}

func TestEvalImportReadErrorIsIoError(t *testing.T) {
	dir := t.TempDir()
	stmts, err := parser.Parse("main.ucg", []byte(`import "missing.ucg" as m; out json m;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(dir, false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "IoError", evalErr.Kind)
}
