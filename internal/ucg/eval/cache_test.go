// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCacheInsertOnce(t *testing.T) {
	c := NewImportCache()
	c.Insert("/a.ucg", Int{Val: 1})
	c.Insert("/a.ucg", Int{Val: 2}) // no-op: already cached
	v, ok := c.Get("/a.ucg")
	require.True(t, ok)
	assert.Equal(t, Int{Val: 1}, v)
}

func TestImportCacheMiss(t *testing.T) {
	c := NewImportCache()
	_, ok := c.Get("/missing.ucg")
	assert.False(t, ok)
}
