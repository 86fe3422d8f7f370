// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package convert

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/holomush/ucg/internal/ucg/eval"
)

// JSON converts an eval.Value to JSON, preserving tuple field order
// with a hand-rolled object encoder rather than map[string]any (which
// `encoding/json` would re-sort alphabetically).
type JSON struct{}

func (JSON) Convert(value eval.Value, w io.Writer) error {
	plain, err := toPlain("json", value, false)
	if err != nil {
		return err
	}
	return writeJSONValue(w, plain)
}

func writeJSONValue(w io.Writer, v any) error {
	switch val := v.(type) {
	case nil:
		_, err := io.WriteString(w, "null")
		return err
	case orderedMap:
		return writeJSONObject(w, val)
	case []any:
		return writeJSONArray(w, val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("encoding JSON scalar: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
}

func writeJSONObject(w io.Writer, obj orderedMap) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, field := range obj {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		keyJSON, err := json.Marshal(field.Key)
		if err != nil {
			return err
		}
		if _, err := w.Write(keyJSON); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ":"); err != nil {
			return err
		}
		if err := writeJSONValue(w, field.Val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

func writeJSONArray(w io.Writer, elems []any) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, e := range elems {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if err := writeJSONValue(w, e); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}
