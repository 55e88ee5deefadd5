// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credential_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/credential"
)

/*
TestFile_ReadsAtCallTime verifies that a rotated token file is picked up without rebuilding the provider.
*/
func TestFile_ReadsAtCallTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	provider := credential.File{Path: path}

	// 1. Missing file means anonymous
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	// 2. Written token is returned trimmed
	require.NoError(t, os.WriteFile(path, []byte("abc123\n"), 0o600))
	token, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// 3. Rotation is visible immediately
	require.NoError(t, os.WriteFile(path, []byte("def456"), 0o600))
	token, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "def456", token)
}

/*
TestFromSettings verifies the precedence between an explicit token and a token file.
*/
func TestFromSettings(t *testing.T) {
	assert.Equal(t, credential.Static("tok"), credential.FromSettings("tok", "/tmp/ignored"))
	assert.Equal(t, credential.File{Path: "/tmp/token"}, credential.FromSettings("", "/tmp/token"))
	assert.Equal(t, credential.Static(""), credential.FromSettings("", ""))
}

/*
TestExpiring_RejectsExpiredJWT checks exp inspection for JWT-shaped tokens only.
*/
func TestExpiring_RejectsExpiredJWT(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sign := func(expiresAt time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)
		return signed
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"opaque_token", "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b", false},
		{"valid_jwt", sign(now.Add(time.Hour)), false},
		{"expired_jwt", sign(now.Add(-time.Minute)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := credential.Expiring{
				Source: credential.Static(tt.token),
				Now:    func() time.Time { return now },
			}

			token, err := provider.Token(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, "UNAUTHORIZED"))
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.token, token)
			}
		})
	}
}
