package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// NewOpenAI creates a completer for an OpenAI compatible chat completions
// API. If baseURL is empty, api.openai.com is used.
func NewOpenAI(apiKey, baseURL, model string, prompts Prompts) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		prompts: prompts,
	}
}

type OpenAI struct {
	client  *openai.Client
	model   string
	prompts Prompts
}

func (c *OpenAI) Complete(ctx context.Context, query, docs string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: c.prompts.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: c.prompts.user(query, docs),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("completion: failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
