// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ucg/internal/ucg/parser"
)

func build(t *testing.T, src string, validate, strict bool) *Evaluator {
	t.Helper()
	stmts, err := parser.Parse("t.ucg", []byte(src))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), validate, strict)
	require.NoError(t, ev.EvalFile(stmts))
	return ev
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	ev := build(t, `let x = 1 + 2 * 3; out json x;`, false, false)
	assert.Equal(t, Int{Val: 7}, ev.Output)
}

func TestEvalCopyTypePreservation(t *testing.T) {
	ev := build(t, `let base = {a = 1}; out json base{a = 2};`, false, false)
	tup := ev.Output.(*Tuple)
	v, ok := tup.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 2}, v)
}

func TestEvalCopyTypePreservationRejectsMismatch(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let base = {a = 1}; out json base{a = "x"};`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "TypeFail", evalErr.Kind)
}

func TestEvalCopyAllowsEmptyEitherSide(t *testing.T) {
	ev := build(t, `let base = {a = NULL}; out json base{a = 5};`, false, false)
	tup := ev.Output.(*Tuple)
	v, _ := tup.Get("a")
	assert.Equal(t, Int{Val: 5}, v)
}

func TestEvalMacroClosure(t *testing.T) {
	ev := build(t, `let add = macro(a, b) => { sum = a + b }; out json add(1, 2);`, false, false)
	tup := ev.Output.(*Tuple)
	v, ok := tup.Get("sum")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 3}, v)
}

func TestEvalMacroRejectsFreeSymbol(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let m = macro(a) => { v = a + unbound }; out json m(1);`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
}

func TestEvalMacroDoesNotCloseOverOuterScope(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let y = 10; let m = macro(a) => { v = a + y }; out json m(1);`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err, "macro bodies may only reference their own argdefs, not outer lexical bindings")
}

func TestEvalArityUnderflowUnusedParamIsNotAnError(t *testing.T) {
	ev := build(t, `let m = macro(a, b) => { v = 1 }; out json m(1);`, false, false)
	tup := ev.Output.(*Tuple)
	v, ok := tup.Get("v")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 1}, v)
}

func TestEvalArityUnderflowSymbolLookupFails(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let m = macro(a, b) => { v = b }; out json m(1);`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "NoSuchSymbol", evalErr.Kind)
}

func TestEvalArityOverflowRejected(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let m = macro(a) => { v = a }; out json m(1, 2);`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "BadArgLen", evalErr.Kind)
}

func TestEvalSingleOutputDuplicateRejected(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`out json 1; out json 2;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "DuplicateBinding", evalErr.Kind)
}

func TestEvalMapListOp(t *testing.T) {
	ev := build(t, `let xs = [1,2,3]; let dbl = macro(x) => { v = x * 2 }; out json map dbl.v xs;`, false, false)
	list := ev.Output.(*List)
	want := []Value{Int{Val: 2}, Int{Val: 4}, Int{Val: 6}}
	assert.Equal(t, want, list.Elements)
}

func TestEvalFilterListOpKeepsIntZero(t *testing.T) {
	// Filter semantics: an element survives unless its projected field
	// is Empty or Boolean(false); Int(0) is kept.
	ev := build(t, `let xs = [0,1,2]; let keep = macro(x) => { v = x }; out json filter keep.v xs;`, false, false)
	list := ev.Output.(*List)
	want := []Value{Int{Val: 0}, Int{Val: 1}, Int{Val: 2}}
	assert.Equal(t, want, list.Elements)
}

func TestEvalFilterListOpDropsFalse(t *testing.T) {
	ev := build(t, `let xs = [1,2,3]; let drop = macro(x) => { v = x != 2 }; out json filter drop.v xs;`, false, false)
	list := ev.Output.(*List)
	want := []Value{Int{Val: 1}, Int{Val: 3}}
	assert.Equal(t, want, list.Elements)
}

func TestEvalSelectMatchesBranch(t *testing.T) {
	ev := build(t, `out json select "b", 0, {a = 1, b = 2};`, false, false)
	assert.Equal(t, Int{Val: 2}, ev.Output)
}

func TestEvalSelectFallsBackToDefault(t *testing.T) {
	ev := build(t, `out json select "z", 0, {a = 1};`, false, false)
	assert.Equal(t, Int{Val: 0}, ev.Output)
}

func TestEvalSelectOnBoolean(t *testing.T) {
	ev := build(t, `out json select true, 0, {true = 9, false = 8};`, false, false)
	assert.Equal(t, Int{Val: 9}, ev.Output)
}

func TestEvalAssertCollectorAccumulates(t *testing.T) {
	ev := build(t, `assert "1 == 1"; assert "1 == 2"; out json 0;`, true, false)
	assert.Equal(t, 2, ev.Assert.Count)
	assert.False(t, ev.Assert.Success)
	assert.Contains(t, ev.Assert.Failures(), "1 == 2")
}

func TestEvalAssertSkippedOutsideValidateMode(t *testing.T) {
	ev := build(t, `assert "1 == 2"; out json 0;`, false, false)
	assert.Equal(t, 0, ev.Assert.Count)
	assert.True(t, ev.Assert.Success)
}

func TestEvalSelectorListIndex(t *testing.T) {
	ev := build(t, `let xs = [10, 20, 30]; out json xs.1;`, false, false)
	assert.Equal(t, Int{Val: 20}, ev.Output)
}

func TestEvalSelectorTupleField(t *testing.T) {
	ev := build(t, `let t = {a = {b = 5}}; out json t.a.b;`, false, false)
	assert.Equal(t, Int{Val: 5}, ev.Output)
}

func TestEvalGenericDotOperatorOnNonSelectorShape(t *testing.T) {
	ev := build(t, `out json [1,2,3].0;`, false, false)
	assert.Equal(t, Int{Val: 1}, ev.Output)
}

func TestEvalFormat(t *testing.T) {
	ev := build(t, `out json "@ is @" % ("x", 1);`, false, false)
	assert.Equal(t, Str{Val: "x is 1"}, ev.Output)
}

func TestEvalFormatPlaceholderCountMismatch(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`out json "@ @" % (1);`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "BadArgLen", evalErr.Kind)
}

func TestEvalModuleCopyExcludesParamSeed(t *testing.T) {
	src := `let m = module { a = 1 } => { let b = mod.a + 1; }; out json m{a = 2};`
	ev := build(t, src, false, false)
	tup := ev.Output.(*Tuple)
	assert.Len(t, tup.Fields, 1)
	b, ok := tup.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 3}, b)
	_, hasMod := tup.Get("mod")
	assert.False(t, hasMod)
}

func TestEvalCopyOfNonTupleNonModuleIsTypeFail(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`let x = 1; out json x{a = 2};`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "TypeFail", evalErr.Kind)
}

func TestEvalStrictModeUndeclaredEnvVarErrors(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`out json env.UCG_TEST_DOES_NOT_EXIST_XYZ;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, true)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "NoSuchSymbol", evalErr.Kind)
}

func TestEvalNonStrictModeUndeclaredEnvVarIsEmpty(t *testing.T) {
	ev := build(t, `out json env.UCG_TEST_DOES_NOT_EXIST_XYZ;`, false, false)
	assert.Equal(t, Empty{}, ev.Output)
}

func TestEvalDivisionByZeroInt(t *testing.T) {
	stmts, err := parser.Parse("t.ucg", []byte(`out json 1 / 0;`))
	require.NoError(t, err)
	ev := NewRootEvaluator(t.TempDir(), false, false)
	err = ev.EvalFile(stmts)
	require.Error(t, err)
}

func TestEvalEqualityStructural(t *testing.T) {
	ev := build(t, `out json {a = 1, b = 2} == {a = 1, b = 2};`, false, false)
	assert.Equal(t, Boolean{Val: true}, ev.Output)
}

func TestEvalBindingByName(t *testing.T) {
	ev := build(t, `let x = 42; out json x;`, false, false)
	v, ok := ev.BindingByName("x")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 42}, v)
}
