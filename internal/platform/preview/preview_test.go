// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicdesk/internal/platform/preview"
)

/*
TestRegistry_Lifecycle verifies that URLs are unique, carry the file name and are released exactly once.
*/
func TestRegistry_Lifecycle(t *testing.T) {
	registry := preview.NewRegistry()

	first := registry.Create("poster.png")
	second := registry.Create("poster.png")

	assert.NotEqual(t, first, second)
	assert.True(t, len(first) > len(preview.Scheme))
	assert.Equal(t, 2, registry.Count())

	assert.Contains(t, first, "/poster.png")

	assert.True(t, registry.Revoke(first))
	assert.False(t, registry.Revoke(first))
	assert.False(t, registry.Revoke("https://cdn.example.org/a.png"))

	assert.Equal(t, 1, registry.Count())
}
