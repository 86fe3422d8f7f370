// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ast

import (
	"strings"

	"github.com/holomush/ucg/internal/ucg/token"
)

// Expression is any UCG expression node.
type Expression interface {
	Pos() Position
	exprNode()
	String() string
}

// BinaryKind tags the operator of a Binary expression.
type BinaryKind int

const (
	Dot BinaryKind = iota
	Add
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

func (k BinaryKind) String() string {
	switch k {
	case Dot:
		return "."
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Precedence returns the binding power of k; higher binds tighter:
// dot (4) > mul/div (3) > add/sub (2) > comparisons (1).
func (k BinaryKind) Precedence() int {
	switch k {
	case Dot:
		return 4
	case Mul, Div:
		return 3
	case Add, Sub:
		return 2
	default: // Eq, Ne, Lt, Le, Gt, Ge
		return 1
	}
}

// Simple wraps a syntactic Value as an Expression.
type Simple struct {
	Val Value
}

func (e *Simple) Pos() Position  { return e.Val.Pos() }
func (e *Simple) exprNode()      {}
func (e *Simple) String() string { return e.Val.String() }

// Binary is a left-associative binary operator application, produced
// by the precedence climb.
type Binary struct {
	P     Position
	Kind  BinaryKind
	Left  Expression
	Right Expression
}

func (e *Binary) Pos() Position { return e.P }
func (e *Binary) exprNode()     {}
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Kind.String() + " " + e.Right.String() + ")"
}

// Copy is a tuple/module copy-with-overrides expression: "selector{ overrides }".
type Copy struct {
	P         Position
	Selector  Expression
	Overrides []TupleField
}

func (e *Copy) Pos() Position { return e.P }
func (e *Copy) exprNode()     {}
func (e *Copy) String() string {
	parts := make([]string, len(e.Overrides))
	for i, f := range e.Overrides {
		parts[i] = f.Name.Fragment + " = " + f.Expr.String()
	}
	return e.Selector.String() + "{" + strings.Join(parts, ", ") + "}"
}

// Grouped is a parenthesized expression: "( expr )".
type Grouped struct {
	P     Position
	Inner Expression
}

func (e *Grouped) Pos() Position   { return e.P }
func (e *Grouped) exprNode()       {}
func (e *Grouped) String() string { return "(" + e.Inner.String() + ")" }

// Format is a "TEMPLATE % ( args )" format expression. Template is the
// QUOTED or PIPEQUOTE token whose fragment is the `@`-placeholder
// template text.
type Format struct {
	P        Position
	Template token.Token
	Args     []Expression
}

func (e *Format) Pos() Position { return e.P }
func (e *Format) exprNode()     {}
func (e *Format) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Template.Fragment + " % (" + strings.Join(parts, ", ") + ")"
}

// Call is a macro invocation: "selector( args )".
type Call struct {
	P        Position
	Selector Expression
	Args     []Expression
}

func (e *Call) Pos() Position { return e.P }
func (e *Call) exprNode()     {}
func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Selector.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Macro is a macro literal: "macro( argdefs ) => { fields }".
type Macro struct {
	P       Position
	Argdefs []token.Token
	Fields  []TupleField
}

func (e *Macro) Pos() Position { return e.P }
func (e *Macro) exprNode()     {}
func (e *Macro) String() string {
	args := make([]string, len(e.Argdefs))
	for i, a := range e.Argdefs {
		args[i] = a.Fragment
	}
	fields := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = f.Name.Fragment + " = " + f.Expr.String()
	}
	return "macro(" + strings.Join(args, ", ") + ") => {" + strings.Join(fields, ", ") + "}"
}

// Select is a "select discriminant, default, { branches }" expression.
type Select struct {
	P            Position
	Discriminant Expression
	Default      Expression
	Branches     []TupleField
}

func (e *Select) Pos() Position { return e.P }
func (e *Select) exprNode()     {}
func (e *Select) String() string {
	parts := make([]string, len(e.Branches))
	for i, f := range e.Branches {
		parts[i] = f.Name.Fragment + " = " + f.Expr.String()
	}
	return "select " + e.Discriminant.String() + ", " + e.Default.String() + ", {" + strings.Join(parts, ", ") + "}"
}

// ListOpKind tags whether a ListOp maps or filters.
type ListOpKind int

const (
	Map ListOpKind = iota
	Filter
)

func (k ListOpKind) String() string {
	if k == Filter {
		return "filter"
	}
	return "map"
}

// ListOp is a "map|filter selector.field target" expression.
type ListOp struct {
	P             Position
	Kind          ListOpKind
	MacroSelector Expression
	FieldName     token.Token
	Target        Expression
}

func (e *ListOp) Pos() Position { return e.P }
func (e *ListOp) exprNode()     {}
func (e *ListOp) String() string {
	return e.Kind.String() + " " + e.MacroSelector.String() + "." + e.FieldName.Fragment + " " + e.Target.String()
}

// Module is a "module { arg-set } => { statements }" expression.
type Module struct {
	P          Position
	ArgSet     []TupleField
	Statements []Statement
}

func (e *Module) Pos() Position { return e.P }
func (e *Module) exprNode()     {}
func (e *Module) String() string {
	parts := make([]string, len(e.ArgSet))
	for i, f := range e.ArgSet {
		parts[i] = f.Name.Fragment + " = " + f.Expr.String()
	}
	return "module {" + strings.Join(parts, ", ") + "} => { ... }"
}
