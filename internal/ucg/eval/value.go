// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package eval implements the UCG evaluator: scope, selector
// resolution, macro/module expansion, assertions, and single-output
// enforcement over an AST produced by internal/ucg/parser.
package eval

import (
	"strconv"
	"strings"

	"github.com/holomush/ucg/internal/ucg/ast"
)

// Kind tags the shape of a reduced Value, used by copy's
// type-preservation check and by converters to reject Macro/Module.
type Kind int

const (
	KindEmpty Kind = iota
	KindBoolean
	KindInt
	KindFloat
	KindStr
	KindList
	KindTuple
	KindMacro
	KindModule
	KindEnv
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindBoolean:
		return "Boolean"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindMacro:
		return "Macro"
	case KindModule:
		return "Module"
	case KindEnv:
		return "Env"
	default:
		return "Unknown"
	}
}

// Value is a fully-reduced UCG runtime value.
type Value interface {
	Kind() Kind
	String() string
}

type Empty struct{}

func (Empty) Kind() Kind     { return KindEmpty }
func (Empty) String() string { return "NULL" }

type Boolean struct{ Val bool }

func (Boolean) Kind() Kind { return KindBoolean }
func (b Boolean) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

type Int struct{ Val int64 }

func (Int) Kind() Kind        { return KindInt }
func (i Int) String() string  { return strconv.FormatInt(i.Val, 10) }

type Float struct{ Val float64 }

func (Float) Kind() Kind       { return KindFloat }
func (f Float) String() string { return strconv.FormatFloat(f.Val, 'g', -1, 64) }

type Str struct{ Val string }

func (Str) Kind() Kind        { return KindStr }
func (s Str) String() string { return strconv.Quote(s.Val) }

// Field is one (name, value) pair of a Tuple, in declaration order.
type Field struct {
	Name string
	Val  Value
}

// Tuple is an ordered name->value mapping; field order is preserved.
type Tuple struct {
	Fields []Field
}

func (*Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + " = " + f.Val.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the field named name, preserving first-match order.
func (t *Tuple) Get(name string) (Value, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Val, true
		}
	}
	return nil, false
}

// indexOf returns the slice index of field name, or -1.
func (t *Tuple) indexOf(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// clone returns a shallow copy of t's field slice, safe to mutate
// without affecting t (copy-on-override semantics).
func (t *Tuple) clone() []Field {
	out := make([]Field, len(t.Fields))
	copy(out, t.Fields)
	return out
}

// List is an ordered sequence of Values.
type List struct {
	Elements []Value
}

func (*List) Kind() Kind { return KindList }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Macro is a pure function value: an AST macro definition, closed over
// nothing but its own argdefs.
type Macro struct {
	Def *ast.Macro
}

func (*Macro) Kind() Kind       { return KindMacro }
func (m *Macro) String() string { return m.Def.String() }

// Module is a parameterised statement block: its AST, the resolved
// default parameter Tuple (evaluated in the defining scope at
// Module-literal evaluation time), and the directory relative imports
// inside its statements resolve against.
type Module struct {
	Def    *ast.Module
	Params *Tuple
	Dir    string
}

func (*Module) Kind() Kind       { return KindModule }
func (m *Module) String() string { return m.Def.String() }

// Env is the process-environment pseudo-tuple.
type Env struct {
	Vars map[string]string
}

func (*Env) Kind() Kind       { return KindEnv }
func (*Env) String() string { return "env" }

// Lookup returns the value of the named environment variable.
func (e *Env) Lookup(name string) (string, bool) {
	v, ok := e.Vars[name]
	return v, ok
}

// valuesEqual implements structural deep equality for ==/!=: shapes
// and field orders must match.
func valuesEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Empty:
		return true
	case Boolean:
		return av.Val == b.(Boolean).Val
	case Int:
		return av.Val == b.(Int).Val
	case Float:
		return av.Val == b.(Float).Val
	case Str:
		return av.Val == b.(Str).Val
	case *List:
		bv := b.(*List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv := b.(*Tuple)
		if len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name {
				return false
			}
			if !valuesEqual(av.Fields[i].Val, bv.Fields[i].Val) {
				return false
			}
		}
		return true
	default:
		// Macro, Module, Env: compared by identity, equal only when
		// both operands are the same Go value (e.g. one binding compared
		// with itself).
		return a == b
	}
}

// typeCompatible implements copy's override type-preservation rule:
// same reduced-value kind, or either side Empty.
func typeCompatible(oldVal, newVal Value) bool {
	return oldVal.Kind() == KindEmpty || newVal.Kind() == KindEmpty || oldVal.Kind() == newVal.Kind()
}

// displayValue renders v for Format's `@`-placeholder substitution.
// Str renders unquoted so templates interpolate naturally; every
// other kind uses its String() form.
func displayValue(v Value) string {
	if s, ok := v.(Str); ok {
		return s.Val
	}
	return v.String()
}
