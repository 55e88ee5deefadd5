// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicdesk/pkg/slice"
)

/*
TestMap covers projection and nil preservation.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []int{1, 3}, slice.Map([]string{"a", "abc"}, func(value string) int { return len(value) }))
	assert.Nil(t, slice.Map[string, int](nil, func(string) int { return 0 }))
}

/*
TestFilter keeps matching elements in order.
*/
func TestFilter(t *testing.T) {
	input := []string{"banner.png", "notes.txt", "crowd.png"}
	kept := slice.Filter(input, func(name string) bool { return strings.HasSuffix(name, ".png") })
	assert.Equal(t, []string{"banner.png", "crowd.png"}, kept)
}

/*
TestSet builds a membership map from derived keys.
*/
func TestSet(t *testing.T) {
	set := slice.Set([]string{"a", "bb", "cc"}, func(value string) int { return len(value) })
	assert.Equal(t, map[int]bool{1: true, 2: true}, set)
}
