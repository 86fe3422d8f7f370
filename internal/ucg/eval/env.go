// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"os"
	"strings"
)

// newEnvFromProcess snapshots the host process environment into the
// `env` pseudo-tuple at evaluator construction; subsequent host
// changes are invisible to the running evaluator.
func newEnvFromProcess() *Env {
	vars := map[string]string{}
	for _, kv := range os.Environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[name] = val
	}
	return &Env{Vars: vars}
}
