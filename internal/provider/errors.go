package provider

import "errors"

// Sentinel errors for provider operations.
var (
	// ErrNotConfigured indicates the provider is missing credentials.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrRateLimit indicates the provider returned a rate limit response.
	ErrRateLimit = errors.New("provider rate limited")

	// ErrProviderDown indicates the provider is temporarily unavailable.
	ErrProviderDown = errors.New("provider unavailable")

	// ErrEmptyResponse indicates the provider returned a success status
	// with no usable text in the body.
	ErrEmptyResponse = errors.New("provider returned empty response")

	// ErrAllProviders indicates every provider in the cascade failed.
	ErrAllProviders = errors.New("all AI providers failed")
)
