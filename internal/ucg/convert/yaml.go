// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package convert

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/holomush/ucg/internal/ucg/eval"
)

// YAML converts an eval.Value to YAML using yaml.v3's yaml.Node
// construction, so tuple field order survives encoding (the default
// map[string]any encoder would alphabetize keys).
type YAML struct{}

func (YAML) Convert(value eval.Value, w io.Writer) error {
	plain, err := toPlain("yaml", value, false)
	if err != nil {
		return err
	}
	node, err := toYAMLNode(plain)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toYAMLNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		s := "false"
		if val {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range val {
			n, err := toYAMLNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case orderedMap:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, field := range val {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Key}
			valNode, err := toYAMLNode(field.Val)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, keyNode, valNode)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("yaml: unsupported plain value %T", v)
	}
}
