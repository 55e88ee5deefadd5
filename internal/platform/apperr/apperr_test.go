// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
)

/*
TestFromStatus covers envelope values and the fallbacks derived from the status.
*/
func TestFromStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		code        string
		message     string
		wantCode    string
		wantMessage string
	}{
		{"envelope_wins", http.StatusBadRequest, "CUSTOM", "Name taken", "CUSTOM", "Name taken"},
		{"not_found", http.StatusNotFound, "", "", "NOT_FOUND", "Not Found"},
		{"rate_limited", http.StatusTooManyRequests, "", "", "RATE_LIMITED", "Too Many Requests"},
		{"bad_gateway", http.StatusBadGateway, "", "", "INTERNAL_ERROR", "Bad Gateway"},
		{"teapot", http.StatusTeapot, "", "", "REQUEST_FAILED", "I'm a teapot"},
		{"unknown_status", 499, "", "", "REQUEST_FAILED", "Request failed with status 499"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperr.FromStatus(tt.status, tt.code, tt.message, nil)
			assert.Equal(t, tt.status, err.HTTPStatus)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

/*
TestAs_WrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	cause := apperr.NotFound("Organization")
	wrapped := fmt.Errorf("organization get detail: %w", cause)

	require.True(t, apperr.IsAppError(wrapped))
	assert.Same(t, cause, apperr.As(wrapped))
	assert.Equal(t, "Organization not found", apperr.As(wrapped).Message)
	assert.True(t, apperr.HasCode(wrapped, "NOT_FOUND"))
	assert.False(t, apperr.HasCode(wrapped, "CONFLICT"))

	plain := errors.New("boom")
	assert.False(t, apperr.IsAppError(plain))
	assert.Nil(t, apperr.As(plain))
}

/*
TestCauses verifies that internal causes stay reachable but hidden from the message.
*/
func TestCauses(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	unavailable := apperr.Unavailable(cause)
	assert.ErrorIs(t, unavailable, cause)
	assert.Equal(t, "The server could not be reached", unavailable.Error())

	internal := apperr.Internal(cause)
	assert.ErrorIs(t, internal, cause)
	assert.NotContains(t, internal.Error(), "refused")

	precondition := apperr.Precondition("entity id is required")
	assert.Zero(t, precondition.HTTPStatus)
	assert.Equal(t, "PRECONDITION_FAILED", precondition.Code)
}
