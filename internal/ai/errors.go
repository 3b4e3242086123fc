package ai

import "errors"

var (
	// ErrNoProvidersConfigured is returned when no provider has an API key
	ErrNoProvidersConfigured = errors.New("no AI provider configured")

	// ErrNoTransport is returned when the client has no HTTP transport to call out with
	ErrNoTransport = errors.New("no network transport configured")

	// ErrAllProvidersFailed is returned when every enabled provider was tried and failed
	ErrAllProvidersFailed = errors.New("all AI providers failed")

	// ErrRequestFailed is returned when an upstream call reports a non-success status
	ErrRequestFailed = errors.New("provider request failed")

	// ErrEmptyResponse is returned when a provider responds without usable text
	ErrEmptyResponse = errors.New("provider returned no usable text")
)
