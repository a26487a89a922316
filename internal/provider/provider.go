// Package provider defines the Provider interface for remote text
// generation, the request types shared by all provider modules, and the
// ordered fallback Cascade.
package provider

import "context"

// Provider is the interface for a remote text-generation service.
// Concrete implementations live in separate packages
// (e.g. modules/provider/gemini) and convert a Request into their
// native wire format.
type Provider interface {
	// Name returns a human-readable provider identifier for logs and
	// cascade results (e.g. "Gemini Flash").
	Name() string

	// Generate sends a generation request and returns the produced text.
	// Failure is always signalled through the error return;
	// implementations never encode failure in the response string.
	Generate(ctx context.Context, req Request) (string, error)
}

// Embedder is implemented by providers that can turn text into an
// embedding vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
