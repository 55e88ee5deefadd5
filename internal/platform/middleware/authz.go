// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/respond"
)

// TokenVerifier checks an access token taken from the Authorization header.
type TokenVerifier interface {
	VerifyToken(token string) error
}

/*
RequireToken rejects requests without a valid "Authorization: Token <token>" header.

A nil verifier lets every request through (open development backend).

# Flow
 1. Read the Authorization header and check the "Token" scheme.
 2. Verify the token via [TokenVerifier].
 3. Abort with 401 on any failure.
*/
func RequireToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			scheme, token, found := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, constants.AuthScheme) || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication credentials were not provided."))
				return
			}

			if err := verifier.VerifyToken(token); err != nil {
				if appError := apperr.As(err); appError != nil {
					respond.Error(writer, request, appError)
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid token."))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
