package anthropic

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAnthropicClient implements the clients.AssistantClient interface for testing
type MockAnthropicClient struct {
	mock.Mock
}

// Ask mocks a single-turn question
func (m *MockAnthropicClient) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}
