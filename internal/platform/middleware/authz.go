// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/constants"
	"github.com/taibuivan/stamtavla/internal/platform/ctxutil"
	"github.com/taibuivan/stamtavla/internal/platform/respond"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

// TokenVerifier is the subset of [sec.TokenVerifier] used here.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.EditorClaims, error)
}

// Authenticate verifies an optional "Authorization: Bearer" header.
//
// Requests without the header continue anonymously; reads are public. A
// header that is present but malformed or invalid is rejected with 401.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token").WithCause(err))
				return
			}

			ctx := ctxutil.WithEditor(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("editor", claims.Subject)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole rejects anonymous requests with 401 and insufficient roles
// with 403. It must run after [Authenticate].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetEditor(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !claims.UserRole().AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
