// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"crypto/subtle"
	"time"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/credential"
	"github.com/taibuivan/civicdesk/internal/platform/middleware"
)

// StaticVerifier accepts exactly one token, rejecting it once its JWT "exp" has passed.
type StaticVerifier struct {
	Token string
	Now   func() time.Time
}

// NewVerifier returns a nil interface (open backend) when token is empty.
func NewVerifier(token string) middleware.TokenVerifier {
	if token == "" {
		return nil
	}
	return &StaticVerifier{Token: token}
}

// VerifyToken implements [middleware.TokenVerifier].
func (verifier *StaticVerifier) VerifyToken(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(verifier.Token)) != 1 {
		return apperr.Unauthorized("Invalid token.")
	}

	now := time.Now
	if verifier.Now != nil {
		now = verifier.Now
	}
	return credential.CheckExpiry(token, now())
}
