// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ast

import "github.com/holomush/ucg/internal/ucg/token"

// Statement is any top-level UCG file statement.
type Statement interface {
	Pos() Position
	stmtNode()
}

// Let binds the result of Expr to Name in the file's scope.
type Let struct {
	Name token.Token
	Expr Expression
}

func (s *Let) Pos() Position { return s.Name.Pos }
func (s *Let) stmtNode()     {}

// Import binds the tuple produced by evaluating Path to Alias.
type Import struct {
	Path  token.Token
	Alias token.Token
}

func (s *Import) Pos() Position { return s.Path.Pos }
func (s *Import) stmtNode()     {}

// ExprStmt is a bare expression statement, evaluated for its side
// effect of validating but not bound to any name.
type ExprStmt struct {
	Expr Expression
}

func (s *ExprStmt) Pos() Position { return s.Expr.Pos() }
func (s *ExprStmt) stmtNode()     {}

// Assert holds the raw source-fragment token of an "assert STRING;"
// statement. The fragment is itself re-parsed and evaluated as a
// boolean expression only in validate mode.
type Assert struct {
	Source token.Token
}

func (s *Assert) Pos() Position { return s.Source.Pos }
func (s *Assert) stmtNode()     {}

// Output marks Expr as the file's single output value, to be
// serialized by the named converter. A file may declare at most one.
type Output struct {
	Type token.Token
	Expr Expression
}

func (s *Output) Pos() Position { return s.Type.Pos }
func (s *Output) stmtNode()     {}
