// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package stdlib is a compile-time embedded map from short names to
// UCG source fragments, importable by name with no on-disk lookup,
// supplemented with a semver-gated `@constraint` suffix.
package stdlib

import (
	"embed"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

//go:embed fragments/*.ucg
var fragmentFS embed.FS

// Module is one embedded stdlib fragment.
type Module struct {
	Name    string
	Version string
	Source  string
}

var registry = buildRegistry()

func buildRegistry() map[string]Module {
	entries := map[string]string{
		"strings": "1.0.0",
		"list":    "1.0.0",
		"math":    "1.0.0",
	}
	out := make(map[string]Module, len(entries))
	for name, version := range entries {
		src, err := fragmentFS.ReadFile("fragments/" + name + ".ucg")
		if err != nil {
			panic(fmt.Sprintf("stdlib: embedded fragment %q missing: %v", name, err))
		}
		out[name] = Module{Name: name, Version: version, Source: string(src)}
	}
	return out
}

// Lookup returns the embedded module named name, with no `@constraint`
// parsing.
func Lookup(name string) (Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// Resolve parses an import path of the form "name" or "name@constraint"
// and, if name matches an embedded module, returns it after checking
// the version constraint. ok is false when path does not name a bare,
// slash-free stdlib module at all — the caller should fall back to
// filesystem import resolution in that case.
func Resolve(path string) (mod Module, ok bool, err error) {
	if strings.ContainsAny(path, "/\\") {
		return Module{}, false, nil
	}
	name, constraint, hasConstraint := strings.Cut(path, "@")
	m, found := registry[name]
	if !found {
		return Module{}, false, nil
	}
	if hasConstraint {
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			return Module{}, true, fmt.Errorf("invalid version constraint %q for stdlib module %q: %w", constraint, name, err)
		}
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return Module{}, true, fmt.Errorf("invalid embedded version %q for stdlib module %q: %w", m.Version, name, err)
		}
		if !c.Check(v) {
			return Module{}, true, fmt.Errorf("stdlib module %q version %s does not satisfy constraint %q", name, m.Version, constraint)
		}
	}
	return m, true, nil
}
