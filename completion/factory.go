package completion

import (
	"fmt"
	"strings"
)

const (
	ProviderNone   = "none"
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider string
	Endpoint string
	// Deployment is the Azure OpenAI deployment name, or the model name for
	// other providers.
	Deployment string
	APIKey     string
	APIVersion string
}

// New creates the completer for the configured provider. The "none" provider
// returns a nil Completer.
func New(cfg Config, prompts Prompts) (Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderNone:
		return nil, nil
	case ProviderAzure:
		llm, err := newAzureModel(cfg.Endpoint, cfg.Deployment, cfg.APIKey, cfg.APIVersion)
		if err != nil {
			return nil, fmt.Errorf("completion: failed to create Azure OpenAI client: %w", err)
		}
		return NewLangChain(llm, prompts), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Endpoint, cfg.Deployment, prompts), nil
	default:
		return nil, fmt.Errorf("completion: unsupported provider %q", cfg.Provider)
	}
}
