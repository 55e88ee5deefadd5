// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package credential supplies the access token attached to every authenticated
// backend request.
//
// # Architecture
//
// The HTTP client never reads tokens from ambient state. A [Provider] is injected
// at construction time and consulted on every request, so a token written to disk
// by another process is picked up by the next call without a restart.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
)

// Provider returns the current access token. An empty token means "anonymous".
type Provider interface {
	Token(context context.Context) (string, error)
}

// # Providers

// Static always returns the same token.
type Static string

// Token implements [Provider].
func (token Static) Token(context.Context) (string, error) {
	return string(token), nil
}

// File reads the token from a file on every call.
//
// A missing file yields an empty token rather than an error so that logged-out
// clients keep working for public endpoints.
type File struct {
	Path string
}

// Token implements [Provider].
func (file File) Token(context.Context) (string, error) {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("credential: failed to read token file %s: %w", file.Path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// FromSettings picks the provider for the configured token source.
//
// An explicit token wins over a token file; with neither, requests are anonymous.
func FromSettings(accessToken, tokenFile string) Provider {
	switch {
	case accessToken != "":
		return Static(accessToken)
	case tokenFile != "":
		return File{Path: tokenFile}
	default:
		return Static("")
	}
}

// # Expiry Inspection

// Expiring wraps a [Provider] and refuses JWT access tokens whose "exp" claim has passed.
//
// Opaque tokens are passed through untouched. The signature is not verified here;
// the backend remains the authority.
type Expiring struct {
	Source Provider
	Now    func() time.Time
}

// Token implements [Provider].
func (expiring Expiring) Token(context context.Context) (string, error) {
	token, err := expiring.Source.Token(context)
	if err != nil || token == "" {
		return token, err
	}

	now := time.Now
	if expiring.Now != nil {
		now = expiring.Now
	}

	if err := CheckExpiry(token, now()); err != nil {
		return "", err
	}
	return token, nil
}

/*
CheckExpiry inspects a JWT-shaped token and reports whether it is expired.

Parameters:
  - token: string
  - now: time.Time

Returns:
  - error: apperr.Unauthorized if the token carries an "exp" claim before now
*/
func CheckExpiry(token string, now time.Time) error {
	if strings.Count(token, ".") != 2 {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT after all; leave it to the backend.
		return nil
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now) {
		return apperr.Unauthorized("Your session has expired. Please sign in again.")
	}
	return nil
}
