// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package ast defines the UCG syntax tree: the Value literal forms,
// Expression nodes, and Statement nodes produced by the parser (spec
// §3). Every node reports its source Position through Pos(); literal
// and expression nodes that hold their own position keep it as the
// first field, following the convention the policy DSL grammar uses
// for its own AST nodes.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holomush/ucg/internal/ucg/token"
)

// Position is the shared position type for every AST node.
type Position = token.Position

// --- Syntactic Value (parser-level literal) ---

// Value is a parser-level literal: a primitive, a composite
// (Tuple/List), or a Selector.
type Value interface {
	Pos() Position
	valueNode()
	fmt.Stringer
}

// Empty is the NULL literal.
type Empty struct{ P Position }

func (v *Empty) Pos() Position { return v.P }
func (v *Empty) valueNode()    {}
func (v *Empty) String() string { return "NULL" }

// Boolean is a true/false literal.
type Boolean struct {
	P Position
	Val bool
}

func (v *Boolean) Pos() Position { return v.P }
func (v *Boolean) valueNode()    {}
func (v *Boolean) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

// Int is a whole-number literal.
type Int struct {
	P   Position
	Val int64
}

func (v *Int) Pos() Position   { return v.P }
func (v *Int) valueNode()      {}
func (v *Int) String() string { return strconv.FormatInt(v.Val, 10) }

// Float is a fractional-number literal.
type Float struct {
	P   Position
	Val float64
}

func (v *Float) Pos() Position   { return v.P }
func (v *Float) valueNode()      {}
func (v *Float) String() string { return strconv.FormatFloat(v.Val, 'g', -1, 64) }

// Str is a quoted-string literal.
type Str struct {
	P   Position
	Val string
}

func (v *Str) Pos() Position   { return v.P }
func (v *Str) valueNode()      {}
func (v *Str) String() string { return strconv.Quote(v.Val) }

// Symbol is a bare identifier reference, resolved against scope at
// evaluation time.
type Symbol struct {
	P    Position
	Name string
}

func (v *Symbol) Pos() Position   { return v.P }
func (v *Symbol) valueNode()      {}
func (v *Symbol) String() string { return v.Name }

// TupleField is one "name = expr" entry of a tuple literal, macro
// body, module arg-set, copy override list, or select branch list.
type TupleField struct {
	Name token.Token
	Expr Expression
}

// Tuple is an ordered "{ name = expr, ... }" literal. Field order is
// preserved; duplicate names within one literal are rejected by the
// parser.
type Tuple struct {
	P      Position
	Fields []TupleField
}

func (v *Tuple) Pos() Position { return v.P }
func (v *Tuple) valueNode()    {}
func (v *Tuple) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name.Fragment + " = " + f.Expr.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// List is an ordered "[ expr, ... ]" literal.
type List struct {
	P        Position
	Elements []Expression
}

func (v *List) Pos() Position { return v.P }
func (v *List) valueNode()    {}
func (v *List) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Selector is a head expression (a Symbol or a Grouped expression)
// plus an ordered chain of BAREWORD/DIGIT path-segment tokens (spec
// §3, §4.2 "selector" production).
type Selector struct {
	P    Position
	Head Expression
	Tail []token.Token
}

func (v *Selector) Pos() Position { return v.P }
func (v *Selector) valueNode()    {}
func (v *Selector) String() string {
	var b strings.Builder
	b.WriteString(v.Head.String())
	for _, t := range v.Tail {
		b.WriteByte('.')
		b.WriteString(t.Fragment)
	}
	return b.String()
}

// Segments returns the head-name-plus-tail token chain for a Selector
// or for a bare Symbol wrapped in Simple, as used by Binary{Dot}
// evaluation to chain a selector off of an arbitrary expression (spec
// §4.2's dot binary operator, for selectors whose head is not itself
// a plain symbol or grouped expression). ok is false for any other
// expression shape.
func Segments(e Expression) (head string, tail []token.Token, ok bool) {
	switch n := e.(type) {
	case *Simple:
		switch v := n.Val.(type) {
		case *Symbol:
			return v.Name, nil, true
		case *Selector:
			if sym, isSym := v.Head.(*Simple); isSym {
				if s, isSym2 := sym.Val.(*Symbol); isSym2 {
					return s.Name, v.Tail, true
				}
			}
		}
	}
	return "", nil, false
}
