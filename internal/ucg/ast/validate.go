// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ast

import (
	"fmt"
	"strings"

	"github.com/holomush/ucg/internal/ucg/token"
)

// ClosureError reports the free symbols (those naming neither an
// argdef nor resolvable only at call time) found in a macro body.
type ClosureError struct {
	Free []token.Token
}

func (e *ClosureError) Error() string {
	names := make([]string, len(e.Free))
	for i, t := range e.Free {
		names[i] = t.Fragment
	}
	return fmt.Sprintf("macro at %s: free symbol(s) not in argdefs: %s", e.Free[0].Pos, strings.Join(names, ", "))
}

// ValidateClosure walks m's field expressions and collects any bare
// Symbol reference that does not name one of m's argdefs. Selector
// heads, tuples, lists, binary operands, copy overrides, format args,
// call args, and select branches are traversed; nested macros,
// modules, and list ops are opaque and are not descended into.
func ValidateClosure(m *Macro) error {
	bound := make(map[string]bool, len(m.Argdefs))
	for _, a := range m.Argdefs {
		bound[a.Fragment] = true
	}
	var free []token.Token
	for _, f := range m.Fields {
		walkExprForFreeSymbols(f.Expr, bound, &free)
	}
	if len(free) > 0 {
		return &ClosureError{Free: free}
	}
	return nil
}

func walkExprForFreeSymbols(e Expression, bound map[string]bool, free *[]token.Token) {
	switch n := e.(type) {
	case *Simple:
		walkValueForFreeSymbols(n.Val, bound, free)
	case *Binary:
		walkExprForFreeSymbols(n.Left, bound, free)
		walkExprForFreeSymbols(n.Right, bound, free)
	case *Copy:
		for _, o := range n.Overrides {
			walkExprForFreeSymbols(o.Expr, bound, free)
		}
	case *Grouped:
		walkExprForFreeSymbols(n.Inner, bound, free)
	case *Format:
		for _, a := range n.Args {
			walkExprForFreeSymbols(a, bound, free)
		}
	case *Call:
		for _, a := range n.Args {
			walkExprForFreeSymbols(a, bound, free)
		}
	case *Select:
		walkExprForFreeSymbols(n.Discriminant, bound, free)
		walkExprForFreeSymbols(n.Default, bound, free)
		for _, b := range n.Branches {
			walkExprForFreeSymbols(b.Expr, bound, free)
		}
	case *Macro, *Module, *ListOp:
		// Opaque w.r.t. the outer macro's parameters.
	}
}

func walkValueForFreeSymbols(v Value, bound map[string]bool, free *[]token.Token) {
	switch n := v.(type) {
	case *Symbol:
		if !bound[n.Name] {
			*free = append(*free, token.Token{Kind: token.BAREWORD, Fragment: n.Name, Pos: n.P})
		}
	case *Tuple:
		for _, f := range n.Fields {
			walkExprForFreeSymbols(f.Expr, bound, free)
		}
	case *List:
		for _, el := range n.Elements {
			walkExprForFreeSymbols(el, bound, free)
		}
	case *Selector:
		walkExprForFreeSymbols(n.Head, bound, free)
	}
}
