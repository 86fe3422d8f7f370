// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import "github.com/holomush/ucg/internal/ucg/token"

// Scope is an ordered name->Value map. Order is insertion order, used
// only to render a module's bindings back out as a Tuple in
// declaration order; lookups are by name.
type Scope struct {
	order  []string
	vals   map[string]Value
	hidden map[string]Value
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{vals: map[string]Value{}, hidden: map[string]Value{}}
}

// Define binds name to val, rejecting reserved words and duplicate
// bindings within the same scope. pos is used only for error reporting.
func (s *Scope) Define(pos token.Position, name string, val Value) error {
	if token.IsReserved(name) {
		return reservedWordError(pos, name)
	}
	if _, exists := s.vals[name]; exists {
		return duplicateBinding(pos, name)
	}
	if _, exists := s.hidden[name]; exists {
		return duplicateBinding(pos, name)
	}
	s.order = append(s.order, name)
	s.vals[name] = val
	return nil
}

// DefineHidden binds name to val without the reserved-word check and
// without including it in Bindings() — used for the module body's
// "mod" parameter-tuple seed, which is not itself one of the child's
// bindings.
func (s *Scope) DefineHidden(name string, val Value) {
	s.hidden[name] = val
}

// Get looks a name up, checking hidden bindings first.
func (s *Scope) Get(name string) (Value, bool) {
	if v, ok := s.hidden[name]; ok {
		return v, true
	}
	v, ok := s.vals[name]
	return v, ok
}

// Bindings returns the ordinary (non-hidden) bindings in declaration
// order, as used to render a module copy's result Tuple from the
// child's bindings.
func (s *Scope) Bindings() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Field{Name: name, Val: s.vals[name]})
	}
	return out
}
