// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stamtavla/internal/platform/ctxutil"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

/*
TestContext_RequestID stores and reads the correlation ID.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger falls back to the default logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Editor stores verified claims.
*/
func TestContext_Editor(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetEditor(ctx))

	ctx = ctxutil.WithEditor(ctx, &sec.EditorClaims{Role: string(sec.RoleEditor)})
	claims := ctxutil.GetEditor(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "editor", claims.Role)
}
