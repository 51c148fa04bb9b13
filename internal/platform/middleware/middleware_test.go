// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stamtavla/internal/platform/constants"
	"github.com/taibuivan/stamtavla/internal/platform/ctxutil"
	"github.com/taibuivan/stamtavla/internal/platform/middleware"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type fixedVerifier map[string]*sec.EditorClaims

func (verifier fixedVerifier) VerifyToken(token string) (*sec.EditorClaims, error) {
	if claims, found := verifier[token]; found {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type originPolicy struct {
	development bool
	origins     []string
}

func (policy originPolicy) IsDevelopment() bool      { return policy.development }
func (policy originPolicy) AllowedOrigins() []string { return policy.origins }

/*
TestAuthorization combines Authenticate and RequireRole.
*/
func TestAuthorization(t *testing.T) {
	verifier := fixedVerifier{
		"viewer-token": {Role: string(sec.RoleViewer)},
		"editor-token": {Role: string(sec.RoleEditor)},
		"admin-token":  {Role: string(sec.RoleAdmin)},
	}
	handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleEditor)(ok))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"wrong_scheme", "Basic abc", http.StatusUnauthorized},
		{"empty_token", "Bearer ", http.StatusUnauthorized},
		{"invalid_token", "Bearer forged", http.StatusUnauthorized},
		{"viewer", "Bearer viewer-token", http.StatusForbidden},
		{"editor", "Bearer editor-token", http.StatusOK},
		{"admin", "bearer admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/individuals", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			response := httptest.NewRecorder()
			handler.ServeHTTP(response, request)
			assert.Equal(t, tt.status, response.Code)
		})
	}
}

/*
TestAuthenticate_StoresClaims makes verified claims visible downstream.
*/
func TestAuthenticate_StoresClaims(t *testing.T) {
	claims := &sec.EditorClaims{Role: string(sec.RoleEditor)}
	claims.Subject = "anna"

	var seen *sec.EditorClaims
	handler := middleware.Authenticate(fixedVerifier{"t": claims})(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetEditor(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer t")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Same(t, claims, seen)
}

/*
TestCORS echoes allowed origins and answers preflight requests.
*/
func TestCORS(t *testing.T) {
	production := middleware.CORS(originPolicy{origins: []string{"https://tree.example"}})(ok)
	development := middleware.CORS(originPolicy{development: true})(ok)

	tests := []struct {
		name    string
		handler http.Handler
		method  string
		origin  string
		status  int
		allowed string
	}{
		{"listed_origin", production, http.MethodGet, "https://tree.example", http.StatusOK, "https://tree.example"},
		{"unlisted_origin", production, http.MethodGet, "https://evil.example", http.StatusOK, ""},
		{"preflight", production, http.MethodOptions, "https://tree.example", http.StatusNoContent, "https://tree.example"},
		{"development_any", development, http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173"},
		{"no_origin", production, http.MethodGet, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				request.Header.Set(constants.HeaderOrigin, tt.origin)
			}
			response := httptest.NewRecorder()
			tt.handler.ServeHTTP(response, request)

			assert.Equal(t, tt.status, response.Code)
			assert.Equal(t, tt.allowed, response.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

/*
TestRateLimit rejects a client once its burst is spent.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := middleware.RateLimit(ctx)(ok)

	statuses := map[int]int{}
	for range constants.DefaultRateLimitBurst + 20 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "203.0.113.7")
		response := httptest.NewRecorder()
		handler.ServeHTTP(response, request)
		statuses[response.Code]++
	}

	assert.GreaterOrEqual(t, statuses[http.StatusOK], constants.DefaultRateLimitBurst)
	assert.Positive(t, statuses[http.StatusTooManyRequests])

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set(constants.HeaderXRealIP, "198.51.100.1")
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, other)
	assert.Equal(t, http.StatusOK, response.Code)
}

/*
TestPanicRecovery converts a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	response := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Contains(t, response.Body.String(), `"code":"INTERNAL_ERROR"`)
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "192.0.2.4, 10.0.0.1")
	assert.Equal(t, "192.0.2.4", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "192.0.2.9")
	assert.Equal(t, "192.0.2.9", middleware.RealIP(request))
}
