package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

func NewLangChain(llm llms.Model, prompts Prompts) LangChain {
	return LangChain{
		llm:     llm,
		prompts: prompts,
	}
}

// LangChain completes using any langchaingo model.
type LangChain struct {
	llm     llms.Model
	prompts Prompts
}

func (c LangChain) Complete(ctx context.Context, query, docs string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, c.prompts.System),
		llms.TextParts(llms.ChatMessageTypeHuman, c.prompts.user(query, docs)),
	},
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
		llms.WithTopP(topP),
	)
	if err != nil {
		return "", fmt.Errorf("completion: failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// newAzureModel creates a langchaingo model for an Azure OpenAI deployment.
func newAzureModel(endpoint, deployment, apiKey, apiVersion string) (llms.Model, error) {
	return openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(endpoint),
		openai.WithToken(apiKey),
		openai.WithAPIVersion(apiVersion),
		openai.WithModel(deployment),
	)
}
