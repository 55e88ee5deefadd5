// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicdesk/pkg/slug"
)

/*
TestFrom covers accent folding and separator collapsing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Climate Action Berlin", "climate-action-berlin"},
		{"Plakát Zürich", "plakat-zurich"},
		{"  --already--slugged--  ", "already-slugged"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
