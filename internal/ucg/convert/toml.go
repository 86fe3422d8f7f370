// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/holomush/ucg/internal/ucg/eval"
)

// TOML converts an eval.Value to TOML. The top-level value must be a
// Tuple (TOML documents are always tables) and Empty is rejected in
// addition to Macro/Module, since TOML has no null. Table/array-of-tables
// structure and field order are handled here; individual scalar and
// scalar-array values are formatted by BurntSushi/toml's own encoder so
// TOML's escaping and literal syntax stay exactly what that library
// produces.
type TOML struct{}

func (TOML) Convert(value eval.Value, w io.Writer) error {
	if value.Kind() != eval.KindTuple {
		return &ErrUnsupportedValue{Format: "toml", Kind: value.Kind()}
	}
	plain, err := toPlain("toml", value, true)
	if err != nil {
		return err
	}
	return writeTOMLTable(w, plain.(orderedMap), nil)
}

func writeTOMLTable(w io.Writer, table orderedMap, path []string) error {
	var scalars, nested orderedMap
	for _, f := range table {
		if isTOMLNestedField(f.Val) {
			nested = append(nested, f)
		} else {
			scalars = append(scalars, f)
		}
	}
	for _, f := range scalars {
		if err := encodeTOMLKV(w, f.Key, f.Val); err != nil {
			return fmt.Errorf("toml: encoding field %q: %w", f.Key, err)
		}
	}
	for _, f := range nested {
		childPath := append(append([]string{}, path...), f.Key)
		switch v := f.Val.(type) {
		case orderedMap:
			if _, err := fmt.Fprintf(w, "\n[%s]\n", strings.Join(childPath, ".")); err != nil {
				return err
			}
			if err := writeTOMLTable(w, v, childPath); err != nil {
				return err
			}
		case []any:
			for _, elem := range v {
				elemTable, ok := elem.(orderedMap)
				if !ok {
					return fmt.Errorf("toml: mixed table/non-table elements in array %q", strings.Join(childPath, "."))
				}
				if _, err := fmt.Fprintf(w, "\n[[%s]]\n", strings.Join(childPath, ".")); err != nil {
					return err
				}
				if err := writeTOMLTable(w, elemTable, childPath); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// isTOMLNestedField reports whether v must be rendered as a TOML
// table/array-of-tables rather than an inline "key = value" line.
func isTOMLNestedField(v any) bool {
	switch val := v.(type) {
	case orderedMap:
		return true
	case []any:
		for _, e := range val {
			if _, ok := e.(orderedMap); ok {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func encodeTOMLKV(w io.Writer, key string, val any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{key: val}); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
