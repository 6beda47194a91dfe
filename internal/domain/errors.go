package domain

import (
	"errors"
)

var (
	// ErrInvalidQuery signals a search request that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStoreUnavailable signals that posts could not be read from the store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrCompletionNotConfigured signals that no completion provider is wired.
	ErrCompletionNotConfigured = errors.New("completion not configured")
	// ErrUnauthorized signals a rejected session token.
	ErrUnauthorized = errors.New("unauthorized")
)
