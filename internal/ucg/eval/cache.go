// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

// ImportCache memoises evaluated import results by canonical path. It
// is shared by reference across every child evaluator spawned for an
// import or module expansion: insertion is insert-once, never an
// overwrite, matching the single-threaded, synchronous execution
// model the evaluator runs under.
type ImportCache struct {
	entries map[string]Value
}

// NewImportCache returns an empty cache.
func NewImportCache() *ImportCache {
	return &ImportCache{entries: map[string]Value{}}
}

// Get returns the cached value for canonical path p, if any.
func (c *ImportCache) Get(p string) (Value, bool) {
	v, ok := c.entries[p]
	return v, ok
}

// Insert records v for canonical path p exactly once; a second Insert
// for the same path is a no-op, so repeated imports are idempotent.
func (c *ImportCache) Insert(p string, v Value) {
	if _, exists := c.entries[p]; exists {
		return
	}
	c.entries[p] = v
}
