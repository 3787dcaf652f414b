package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Mode string

const (
	// ModeProduction fails to start if required settings are missing.
	ModeProduction Mode = "production"
	// ModeDevelopment substitutes placeholder values for missing settings.
	ModeDevelopment Mode = "development"
)

const (
	BackendAzure = "azure"
	BackendStub  = "stub"
)

const (
	RunMode                     = "RUN_MODE"
	SearchBackend               = "SEARCH_BACKEND"
	SearchStubFile              = "SEARCH_STUB_FILE"
	SearchEndpoint              = "AZURE_AI_SEARCH_ENDPOINT"
	SearchIndex                 = "AZURE_AI_SEARCH_INDEX"
	SearchAPIKey                = "AZURE_AI_SEARCH_API_KEY"
	SearchAPIVersion            = "AZURE_AI_SEARCH_API_VERSION"
	SearchSemanticConfiguration = "AZURE_AI_SEARCH_SEMANTIC_CONFIG"
	SearchTop                   = "AZURE_AI_SEARCH_TOP"
	CompletionProvider          = "COMPLETION_PROVIDER"
	OpenAIEndpoint              = "AZURE_OPENAI_ENDPOINT"
	OpenAIDeployment            = "AZURE_OPENAI_DEPLOYMENT"
	OpenAIAPIKey                = "AZURE_OPENAI_API_KEY"
	OpenAIAPIVersion            = "AZURE_OPENAI_API_VERSION"
)

var defaults = map[string]string{
	RunMode:            string(ModeProduction),
	SearchBackend:      BackendAzure,
	SearchAPIVersion:   "2023-07-01-Preview",
	SearchTop:          "10",
	CompletionProvider: "azure",
	OpenAIAPIVersion:   "2023-05-15",
}

// Placeholders are only used in development mode. They let the server start,
// but calls to the services will fail.
var placeholders = map[string]string{
	SearchEndpoint:   "https://example.search.windows.net",
	SearchIndex:      "example-index",
	SearchAPIKey:     "dummy_key_for_development",
	OpenAIEndpoint:   "https://example.openai.azure.com/",
	OpenAIDeployment: "gpt-35-turbo",
	OpenAIAPIKey:     "dummy_key_for_development",
}

type Search struct {
	Backend               string
	StubFile              string
	Endpoint              string
	Index                 string
	APIKey                string
	APIVersion            string
	SemanticConfiguration string
	Top                   int
}

type Completion struct {
	Provider   string
	Endpoint   string
	Deployment string
	APIKey     string
	APIVersion string
}

type Config struct {
	Mode       Mode
	Search     Search
	Completion Completion
	// Placeholders lists the settings that were given placeholder values.
	Placeholders []string
}

// SearchUsesPlaceholders is true if the search service can't be reached
// because its settings are placeholders.
func (c Config) SearchUsesPlaceholders() bool {
	if c.Search.Backend != BackendAzure {
		return false
	}
	return slices.ContainsFunc(c.Placeholders, func(name string) bool {
		return strings.HasPrefix(name, "AZURE_AI_SEARCH_")
	})
}

var ErrMissingSettings = errors.New("config: missing required settings")

// Load reads settings. Values from lookupEnv take precedence over the
// dotEnvFile, which takes precedence over defaults. The .env file is
// optional, and is never loaded into the process environment.
func Load(lookupEnv func(string) (string, bool), dotEnvFile string) (cfg Config, err error) {
	fileValues := map[string]string{}
	if dotEnvFile != "" {
		if _, statErr := os.Stat(dotEnvFile); statErr == nil {
			fileValues, err = godotenv.Read(dotEnvFile)
			if err != nil {
				return cfg, fmt.Errorf("config: failed to read %s: %w", dotEnvFile, err)
			}
		}
	}
	get := func(name string) string {
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v := strings.TrimSpace(fileValues[name]); v != "" {
			return v
		}
		return defaults[name]
	}

	cfg.Mode = Mode(strings.ToLower(get(RunMode)))
	if cfg.Mode != ModeProduction && cfg.Mode != ModeDevelopment {
		return cfg, fmt.Errorf("config: invalid %s %q, expected %q or %q", RunMode, cfg.Mode, ModeProduction, ModeDevelopment)
	}

	var missing []string
	required := func(name string) string {
		v := get(name)
		if v != "" {
			return v
		}
		if cfg.Mode == ModeDevelopment {
			cfg.Placeholders = append(cfg.Placeholders, name)
			return placeholders[name]
		}
		missing = append(missing, name)
		return ""
	}

	cfg.Search.Backend = strings.ToLower(get(SearchBackend))
	switch cfg.Search.Backend {
	case BackendAzure:
		cfg.Search.Endpoint = required(SearchEndpoint)
		cfg.Search.Index = required(SearchIndex)
		cfg.Search.APIKey = required(SearchAPIKey)
	case BackendStub:
		cfg.Search.StubFile = get(SearchStubFile)
	default:
		return cfg, fmt.Errorf("config: invalid %s %q, expected %q or %q", SearchBackend, cfg.Search.Backend, BackendAzure, BackendStub)
	}
	cfg.Search.APIVersion = get(SearchAPIVersion)
	cfg.Search.SemanticConfiguration = get(SearchSemanticConfiguration)
	if cfg.Search.Top, err = strconv.Atoi(get(SearchTop)); err != nil || cfg.Search.Top < 1 {
		return cfg, fmt.Errorf("config: invalid %s %q, expected a positive number", SearchTop, get(SearchTop))
	}

	cfg.Completion.Provider = strings.ToLower(get(CompletionProvider))
	cfg.Completion.APIVersion = get(OpenAIAPIVersion)
	switch cfg.Completion.Provider {
	case "azure":
		cfg.Completion.Endpoint = required(OpenAIEndpoint)
		cfg.Completion.Deployment = required(OpenAIDeployment)
		cfg.Completion.APIKey = required(OpenAIAPIKey)
	case "openai":
		// The endpoint is optional, api.openai.com is used by default.
		cfg.Completion.Endpoint = get(OpenAIEndpoint)
		cfg.Completion.Deployment = required(OpenAIDeployment)
		cfg.Completion.APIKey = required(OpenAIAPIKey)
	case "none":
	default:
		return cfg, fmt.Errorf("config: invalid %s %q, expected \"azure\", \"openai\" or \"none\"", CompletionProvider, cfg.Completion.Provider)
	}

	if len(missing) > 0 {
		errs := []error{ErrMissingSettings}
		for _, name := range missing {
			errs = append(errs, fmt.Errorf("%s is not set", name))
		}
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
