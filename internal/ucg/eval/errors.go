// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"fmt"

	"github.com/holomush/ucg/internal/ucg/token"
)

// EvalError is a tagged evaluation-time error carrying the offending
// Position. Kind is one of: TypeFail, NoSuchSymbol, BadArgLen,
// DuplicateBinding, ReservedWordError, Unsupported, IoError,
// AssertError.
type EvalError struct {
	Kind  string
	Pos   token.Position
	Msg   string
	Cause error
}

func (e *EvalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Kind, e.Pos, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
}

func (e *EvalError) Unwrap() error { return e.Cause }

func typeFail(pos token.Position, format string, args ...any) error {
	return &EvalError{Kind: "TypeFail", Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func noSuchSymbol(pos token.Position, name string) error {
	return &EvalError{Kind: "NoSuchSymbol", Pos: pos, Msg: fmt.Sprintf("no such symbol %q", name)}
}

func badArgLen(pos token.Position, format string, args ...any) error {
	return &EvalError{Kind: "BadArgLen", Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func duplicateBinding(pos token.Position, name string) error {
	return &EvalError{Kind: "DuplicateBinding", Pos: pos, Msg: fmt.Sprintf("%q is already bound in this scope", name)}
}

func reservedWordError(pos token.Position, name string) error {
	return &EvalError{Kind: "ReservedWordError", Pos: pos, Msg: fmt.Sprintf("%q is a reserved word", name)}
}

func unsupported(pos token.Position, format string, args ...any) error {
	return &EvalError{Kind: "Unsupported", Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func ioError(pos token.Position, cause error, format string, args ...any) error {
	return &EvalError{Kind: "IoError", Pos: pos, Msg: fmt.Sprintf(format, args...), Cause: cause}
}
