// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"fmt"
	"strings"

	"github.com/holomush/ucg/internal/ucg/token"
)

// AssertCollector accumulates the results of every "assert" statement
// evaluated in validate mode. It is shared by reference
// across every evaluator spawned for the build (file body, imports,
// module expansions) so one build produces one aggregated report.
type AssertCollector struct {
	Count    int
	Success  bool
	lines    []string
	failures []string
}

// NewAssertCollector returns a collector whose Success starts true (an
// empty AND is true) and flips to false on the first failing or
// type-failing assertion.
func NewAssertCollector() *AssertCollector {
	return &AssertCollector{Success: true}
}

func (c *AssertCollector) recordOK(pos token.Position) {
	c.Count++
	c.lines = append(c.lines, fmt.Sprintf("OK at %s", pos))
}

func (c *AssertCollector) recordNotOK(pos token.Position, source string) {
	c.Count++
	c.Success = false
	line := fmt.Sprintf("NOT OK at %s: %s", pos, source)
	c.lines = append(c.lines, line)
	c.failures = append(c.failures, line)
}

func (c *AssertCollector) recordTypeFail(pos token.Position, msg string) {
	c.Count++
	c.Success = false
	line := fmt.Sprintf("TYPE FAIL at %s: %s", pos, msg)
	c.lines = append(c.lines, line)
	c.failures = append(c.failures, line)
}

// Summary renders every recorded result, one per line.
func (c *AssertCollector) Summary() string {
	return strings.Join(c.lines, "\n")
}

// Failures renders only the failing/type-failing results.
func (c *AssertCollector) Failures() string {
	return strings.Join(c.failures, "\n")
}
