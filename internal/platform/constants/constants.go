// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire client layer.

Categories:

  - Transport: Header names, authorization scheme and default timeouts.
  - Uploads: Multipart field names and accepted MIME types.
  - Cache Taxonomy: Query key prefixes shared by every key builder.
  - Development backend: Server timing for cmd/devapi.

Using this package keeps magic strings out of services and mutation sets.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "civicdesk"
	AppVersion = "0.1.0-dev"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Transport

const (
	// AuthScheme prefixes the access token in the Authorization header.
	AuthScheme = "Token"

	// ContentTypeJSON is sent with every JSON request body.
	ContentTypeJSON = "application/json; charset=utf-8"

	// DefaultRequestTimeout bounds a single backend round trip when the caller sets no deadline.
	DefaultRequestTimeout = 15 * time.Second

	// MaxErrorBodyBytes caps how much of an error response is read for decoding.
	MaxErrorBodyBytes = 64 << 10
)

// # Uploads

const (
	// FieldFileObject is the multipart field carrying each image file.
	FieldFileObject = "file_object"

	// FieldSequences carries the optional gallery ordering of uploaded files.
	FieldSequences = "sequences"

	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
)

// AllowedImageTypes lists the MIME types the file manager accepts.
var AllowedImageTypes = []string{MIMETypeJPEG, MIMETypePNG}

// # Query Cache Taxonomy

const (
	CachePrefixEvent        = "event"
	CachePrefixGroup        = "group"
	CachePrefixOrganization = "organization"

	CacheScopeDetail = "detail"
	CacheScopeImages = "images"
	CacheScopeList   = "list"
)

// # Development Backend Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second

	// MaxUploadBytes bounds multipart bodies accepted by the development backend.
	MaxUploadBytes = 32 << 20

	// RateLimitCleanupInterval is how often idle rate-limit buckets are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is how long an idle client keeps its bucket.
	RateLimitClientTTL = 3 * time.Minute
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
)
