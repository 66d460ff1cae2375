// Package webui provides a client for an Open WebUI compatible
// knowledge-store API. This package centralizes all knowledge-store
// interactions for the application.
package webui

import (
	"fmt"
	"time"
)

const (
	// DefaultBaseURL is the base URL for the knowledge-store API.
	DefaultBaseURL = "http://localhost:8080/api/v1"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	// MetadataKey is the reserved key inside a remote file's meta blob
	// under which the store keeps the uploaded ExtraMetadata. Identity
	// resolution depends on this convention holding on the remote side.
	MetadataKey = "colligo_metadata"
)

// APIError represents an error from the knowledge-store API. Message
// carries the raw response body as diagnostic text.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("knowledge store error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("knowledge store rate limit exceeded, retry after %v", e.RetryAfter)
}
