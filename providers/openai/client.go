// Package openai wraps the OpenAI chat completions API behind the LLMClient
// interface.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/smartuae/agent/tools"
)

// Client handles OpenAI chat completion requests
type Client struct {
	Model  string
	client openai.Client
}

// Ensure Client satisfies LLMClient
var _ tools.LLMClient = (*Client)(nil)

// NewClient creates a new OpenAI API client
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &Client{
		Model:  model,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// GenerateContent sends a prompt as a single user message and returns the
// completion text
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
