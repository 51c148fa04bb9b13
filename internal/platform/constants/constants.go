// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across the Stamtavla layers.

  - Server Timing: HTTP server and request deadlines.
  - Rate Limiting: per-IP token bucket settings.
  - Headers and JSON fields used by middleware and respond.
  - Redis keys of the export cache.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "stamtavla-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout covers reading the entire request, GEDCOM uploads included.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often idle IP entries are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of editor tokens.
	AuthIssuer = "stamtavla"

	// DefaultTokenTTL is the lifetime of tokens issued by the CLI.
	DefaultTokenTTL = 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldApp     = "app"
	FieldVersion = "version"
)

// # Database Schemas

const (
	SchemaCore = "core"
)

// # Redis Keys

const (
	// RedisKeyGedcomExport holds the rendered GEDCOM text of the whole tree.
	RedisKeyGedcomExport = "{gedcom:export}"

	// RedisKeyGedcomExportGeneration counts export invalidations. It shares
	// the hash slot of RedisKeyGedcomExport.
	RedisKeyGedcomExportGeneration = "{gedcom:export}:generation"
)
