package enrichment

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"selfbot/clients"
)

// MockEnrichmentClient implements the clients.EnrichmentClient interface for testing
type MockEnrichmentClient struct {
	mock.Mock
}

// Fetch mocks a provider lookup
func (m *MockEnrichmentClient) Fetch(ctx context.Context, provider string, query string) mo.Result[clients.Payload] {
	args := m.Called(ctx, provider, query)
	return args.Get(0).(mo.Result[clients.Payload])
}

// HasAPIKey mocks the key availability check
func (m *MockEnrichmentClient) HasAPIKey(provider string) bool {
	args := m.Called(provider)
	return args.Bool(0)
}
