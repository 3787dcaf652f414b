package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func writeDotEnv(t *testing.T, contents string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(name, []byte(contents), 0o600))
	return name
}

var complete = map[string]string{
	SearchEndpoint:   "https://contracts.search.windows.net/",
	SearchIndex:      "idxlegalv2",
	SearchAPIKey:     "search-key",
	OpenAIEndpoint:   "https://contracts.openai.azure.com/",
	OpenAIDeployment: "gpt-4o",
	OpenAIAPIKey:     "openai-key",
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(lookup(complete), "")
	require.NoError(t, err)

	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, Search{
		Backend:    BackendAzure,
		Endpoint:   "https://contracts.search.windows.net/",
		Index:      "idxlegalv2",
		APIKey:     "search-key",
		APIVersion: "2023-07-01-Preview",
		Top:        10,
	}, cfg.Search)
	assert.Equal(t, Completion{
		Provider:   "azure",
		Endpoint:   "https://contracts.openai.azure.com/",
		Deployment: "gpt-4o",
		APIKey:     "openai-key",
		APIVersion: "2023-05-15",
	}, cfg.Completion)
	assert.Empty(t, cfg.Placeholders)
}

func TestLoadPrecedence(t *testing.T) {
	dotEnv := writeDotEnv(t, `AZURE_AI_SEARCH_INDEX=from-file
AZURE_AI_SEARCH_TOP=25
AZURE_AI_SEARCH_API_KEY=file-key
`)
	env := map[string]string{
		SearchEndpoint:     "https://env.search.windows.net",
		SearchIndex:        "from-env",
		SearchAPIKey:       "  ",
		CompletionProvider: "none",
	}

	cfg, err := Load(lookup(env), dotEnv)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Search.Index, "environment beats the .env file")
	assert.Equal(t, 25, cfg.Search.Top, ".env file beats defaults")
	assert.Equal(t, "file-key", cfg.Search.APIKey, "blank environment values are ignored")
	assert.Equal(t, "2023-07-01-Preview", cfg.Search.APIVersion, "defaults are used last")
}

func TestLoadMissingDotEnvFileIsIgnored(t *testing.T) {
	_, err := Load(lookup(complete), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestLoadDoesNotModifyEnvironment(t *testing.T) {
	dotEnv := writeDotEnv(t, "SEARCHSERVER_TEST_ONLY=1\n")
	_, err := Load(lookup(complete), dotEnv)
	require.NoError(t, err)
	_, ok := os.LookupEnv("SEARCHSERVER_TEST_ONLY")
	assert.False(t, ok)
}

func TestLoadProductionRequiresSettings(t *testing.T) {
	_, err := Load(lookup(map[string]string{}), "")
	require.ErrorIs(t, err, ErrMissingSettings)
	names := []string{SearchEndpoint, SearchIndex, SearchAPIKey, OpenAIEndpoint, OpenAIDeployment, OpenAIAPIKey}
	for _, name := range names {
		assert.Contains(t, err.Error(), name)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected the missing settings to be joined")
	assert.Len(t, joined.Unwrap(), len(names)+1)
}

func TestLoadDevelopmentUsesPlaceholders(t *testing.T) {
	cfg, err := Load(lookup(map[string]string{
		RunMode:      "development",
		SearchAPIKey: "real-key",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, "https://example.search.windows.net", cfg.Search.Endpoint)
	assert.Equal(t, "real-key", cfg.Search.APIKey)
	assert.Equal(t, []string{SearchEndpoint, SearchIndex, OpenAIEndpoint, OpenAIDeployment, OpenAIAPIKey}, cfg.Placeholders)
	assert.True(t, cfg.SearchUsesPlaceholders())
}

func TestLoadStubBackendNeedsNoSearchSettings(t *testing.T) {
	cfg, err := Load(lookup(map[string]string{
		SearchBackend:      "stub",
		SearchStubFile:     "hits.yaml",
		CompletionProvider: "none",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, BackendStub, cfg.Search.Backend)
	assert.Equal(t, "hits.yaml", cfg.Search.StubFile)
	assert.False(t, cfg.SearchUsesPlaceholders())
}

func TestLoadOpenAIProviderEndpointIsOptional(t *testing.T) {
	cfg, err := Load(lookup(map[string]string{
		SearchBackend:      "stub",
		CompletionProvider: "openai",
		OpenAIDeployment:   "gpt-4o-mini",
		OpenAIAPIKey:       "key",
	}), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Completion.Endpoint)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "run mode", env: map[string]string{RunMode: "staging"}},
		{name: "backend", env: map[string]string{SearchBackend: "solr"}},
		{name: "top", env: map[string]string{SearchTop: "ten"}},
		{name: "negative top", env: map[string]string{SearchTop: "-1"}},
		{name: "provider", env: map[string]string{CompletionProvider: "carrier-pigeon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range complete {
				env[k] = v
			}
			for k, v := range tt.env {
				env[k] = v
			}
			_, err := Load(lookup(env), "")
			assert.Error(t, err)
		})
	}
}
