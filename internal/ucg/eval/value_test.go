// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesEqualStructuralTuples(t *testing.T) {
	a := &Tuple{Fields: []Field{{Name: "x", Val: Int{Val: 1}}}}
	b := &Tuple{Fields: []Field{{Name: "x", Val: Int{Val: 1}}}}
	c := &Tuple{Fields: []Field{{Name: "y", Val: Int{Val: 1}}}}
	assert.True(t, valuesEqual(a, b))
	assert.False(t, valuesEqual(a, c))
}

func TestValuesEqualDifferentKinds(t *testing.T) {
	assert.False(t, valuesEqual(Int{Val: 1}, Str{Val: "1"}))
}

func TestValuesEqualLists(t *testing.T) {
	a := &List{Elements: []Value{Int{Val: 1}, Int{Val: 2}}}
	b := &List{Elements: []Value{Int{Val: 1}, Int{Val: 2}}}
	c := &List{Elements: []Value{Int{Val: 2}, Int{Val: 1}}}
	assert.True(t, valuesEqual(a, b))
	assert.False(t, valuesEqual(a, c))
}

func TestTypeCompatible(t *testing.T) {
	assert.True(t, typeCompatible(Empty{}, Int{Val: 1}))
	assert.True(t, typeCompatible(Int{Val: 1}, Empty{}))
	assert.True(t, typeCompatible(Int{Val: 1}, Int{Val: 2}))
	assert.False(t, typeCompatible(Int{Val: 1}, Str{Val: "x"}))
}

func TestDisplayValueUnquotesStr(t *testing.T) {
	assert.Equal(t, "hi", displayValue(Str{Val: "hi"}))
	assert.Equal(t, "42", displayValue(Int{Val: 42}))
}

func TestTupleGet(t *testing.T) {
	tup := &Tuple{Fields: []Field{{Name: "a", Val: Int{Val: 1}}, {Name: "b", Val: Int{Val: 2}}}}
	v, ok := tup.Get("b")
	assert.True(t, ok)
	assert.Equal(t, Int{Val: 2}, v)
	_, ok = tup.Get("missing")
	assert.False(t, ok)
}

func TestEnvLookup(t *testing.T) {
	e := &Env{Vars: map[string]string{"FOO": "bar"}}
	v, ok := e.Lookup("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
	_, ok = e.Lookup("MISSING")
	assert.False(t, ok)
}
