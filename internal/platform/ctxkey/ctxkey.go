// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys set by middleware.
//
// The unexported key type keeps these values out of reach of any other
// package that happens to use the same strings.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyEditor holds the verified token claims ([sec.EditorClaims]).
	KeyEditor key = "editor"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
