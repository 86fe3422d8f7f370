// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package convert writes a reduced eval.Value out as JSON, YAML, or
// TOML.
package convert

import (
	"fmt"
	"io"

	"github.com/holomush/ucg/internal/ucg/eval"
)

// Converter writes value to w in its own output format, or returns an
// error if value contains a shape the format cannot represent. Macro
// and Module are always rejected; some formats also reject Empty.
type Converter interface {
	Convert(value eval.Value, w io.Writer) error
}

// ErrUnsupportedValue reports a Value shape a converter cannot encode.
type ErrUnsupportedValue struct {
	Format string
	Kind   eval.Kind
}

func (e *ErrUnsupportedValue) Error() string {
	return fmt.Sprintf("%s converter cannot encode a %s value", e.Format, e.Kind)
}

// ByName returns the Converter registered under name ("json", "yaml",
// or "toml"), or false if name names no known converter.
func ByName(name string) (Converter, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "yaml":
		return YAML{}, true
	case "toml":
		return TOML{}, true
	default:
		return nil, false
	}
}

// toPlain reduces an eval.Value into a plain Go value tree (bool,
// int64, float64, string, []any, or an ordered []kv for tuples)
// suitable for format-specific encoding, rejecting Macro and Module
// (and, when rejectEmpty is set, Empty) per the converter interface.
func toPlain(format string, v eval.Value, rejectEmpty bool) (any, error) {
	switch val := v.(type) {
	case eval.Empty:
		if rejectEmpty {
			return nil, &ErrUnsupportedValue{Format: format, Kind: v.Kind()}
		}
		return nil, nil
	case eval.Boolean:
		return val.Val, nil
	case eval.Int:
		return val.Val, nil
	case eval.Float:
		return val.Val, nil
	case eval.Str:
		return val.Val, nil
	case *eval.List:
		out := make([]any, len(val.Elements))
		for i, e := range val.Elements {
			p, err := toPlain(format, e, rejectEmpty)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case *eval.Tuple:
		out := make(orderedMap, 0, len(val.Fields))
		for _, f := range val.Fields {
			p, err := toPlain(format, f.Val, rejectEmpty)
			if err != nil {
				return nil, err
			}
			out = append(out, kv{Key: f.Name, Val: p})
		}
		return out, nil
	default:
		return nil, &ErrUnsupportedValue{Format: format, Kind: v.Kind()}
	}
}

// kv is one ordered tuple field, as reduced by toPlain.
type kv struct {
	Key string
	Val any
}

// orderedMap preserves tuple field order through encoding, unlike
// map[string]any.
type orderedMap []kv
