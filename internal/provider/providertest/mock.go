// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"sync"

	"github.com/safespace-sl/safespace/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set the Func fields to control behavior. An unset GenerateFunc panics
// on call. All methods are safe for concurrent use.
type MockProvider struct {
	NameValue    string
	GenerateFunc func(ctx context.Context, req provider.Request) (string, error)
	EmbedFunc    func(ctx context.Context, text string) ([]float32, error)

	mu            sync.Mutex
	generateCalls int
	lastRequest   provider.Request
}

// Name returns the configured provider name.
func (m *MockProvider) Name() string { return m.NameValue }

// Generate delegates to GenerateFunc and records the call.
func (m *MockProvider) Generate(ctx context.Context, req provider.Request) (string, error) {
	m.mu.Lock()
	m.generateCalls++
	m.lastRequest = req
	m.mu.Unlock()
	return m.GenerateFunc(ctx, req)
}

// Embed delegates to EmbedFunc.
func (m *MockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.EmbedFunc(ctx, text)
}

// GenerateCalls returns how many times Generate was invoked.
func (m *MockProvider) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// LastRequest returns the most recent request passed to Generate.
func (m *MockProvider) LastRequest() provider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Interface guards.
var (
	_ provider.Provider = (*MockProvider)(nil)
	_ provider.Embedder = (*MockProvider)(nil)
)
