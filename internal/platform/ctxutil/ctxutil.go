// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the request-scoped values of [ctxkey].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/stamtavla/internal/platform/ctxkey"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithEditor returns a copy of ctx carrying verified token claims.
func WithEditor(ctx context.Context, claims *sec.EditorClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyEditor, claims)
}

// GetEditor returns the verified claims, or nil for anonymous requests.
func GetEditor(ctx context.Context) *sec.EditorClaims {
	claims, _ := ctx.Value(ctxkey.KeyEditor).(*sec.EditorClaims)
	return claims
}
