package anthropic

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"selfbot/clients"
)

// DefaultModel is used for ask when no model override is configured
const DefaultModel = anthropic.Model("claude-3-5-haiku-latest")

const (
	maxAnswerTokens = 512
	systemPrompt    = "You answer questions sent from a Discord chat. Keep answers under 1500 characters and use plain Discord markdown."
)

// AnthropicClient implements the clients.AssistantClient interface
type AnthropicClient struct {
	sdkClient anthropic.Client
	model     anthropic.Model
	timeout   time.Duration
}

// NewAnthropicClient creates a new assistant client backed by the Messages API
func NewAnthropicClient(apiKey string, model anthropic.Model, timeout time.Duration, opts ...option.RequestOption) clients.AssistantClient {
	if model == "" {
		model = DefaultModel
	}
	requestOptions := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicClient{
		sdkClient: anthropic.NewClient(requestOptions...),
		model:     model,
		timeout:   timeout,
	}
}

// Ask sends a single-turn question and returns the concatenated text blocks of the answer
func (c *AnthropicClient) Ask(ctx context.Context, question string) (string, error) {
	log.Printf("📋 Starting to ask %s a question (%d chars)", c.model, len(question))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.sdkClient.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxAnswerTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var answer strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}

	if answer.Len() == 0 {
		return "", fmt.Errorf("assistant returned no text content")
	}

	log.Printf("📋 Completed successfully - received answer (%d chars)", answer.Len())
	return strings.TrimSpace(answer.String()), nil
}
