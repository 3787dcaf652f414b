package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/searchserver/auth"
	"github.com/a-h/searchserver/completion"
	"github.com/a-h/searchserver/config"
	"github.com/a-h/searchserver/db"
	documentget "github.com/a-h/searchserver/handlers/document/get"
	historyget "github.com/a-h/searchserver/handlers/history/get"
	searchpost "github.com/a-h/searchserver/handlers/search/post"
	summarypost "github.com/a-h/searchserver/handlers/summary/post"
	"github.com/a-h/searchserver/search"
	"github.com/rqlite/gorqlite"
	"github.com/rs/cors"
)

type ServeCommand struct {
	EnvFile         string        `help:"The .env file to read service settings from, if it exists." env:"ENV_FILE" default:".env"`
	RqliteURL       string        `help:"The URL of the rqlite server used to record searches. Leave empty to disable search history." env:"RQLITE_URL" default:""`
	SystemPrompt    string        `help:"A file containing the system prompt used to summarize results." env:"SYSTEM_PROMPT" default:""`
	UserPrompt      string        `help:"A file containing the user prompt used to summarize results." env:"USER_PROMPT" default:""`
	MaxContextChars int           `help:"The maximum number of characters of search results sent for summarization." env:"MAX_CONTEXT_CHARS" default:"8000"`
	Timeout         time.Duration `help:"The timeout for calls to the search service." env:"SEARCH_TIMEOUT" default:"30s"`
	ListenAddr      string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8000"`
	TLSCertFile     string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile      string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	APIKeysFile     string        `help:"The file containing a JSON map of API keys to usernames. Leave empty to disable authentication." env:"API_KEYS_FILE" default:""`
	LogLevel        string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(contents), nil
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	cfg, err := config.Load(os.LookupEnv, c.EnvFile)
	if err != nil {
		return err
	}
	for _, name := range cfg.Placeholders {
		log.Warn("using placeholder value, calls to the service will fail", slog.String("setting", name), slog.String("mode", string(cfg.Mode)))
	}

	var prompts completion.Prompts
	if prompts.System, err = readFileOrDefault(c.SystemPrompt, completion.DefaultSystemPrompt); err != nil {
		return fmt.Errorf("failed to read system prompt: %w", err)
	}
	if prompts.User, err = readFileOrDefault(c.UserPrompt, completion.DefaultUserPrompt); err != nil {
		return fmt.Errorf("failed to read user prompt: %w", err)
	}
	if err = prompts.Validate(); err != nil {
		return fmt.Errorf("invalid prompt template %q: %w", c.UserPrompt, err)
	}

	searcher, err := newSearcher(log, cfg, c.Timeout)
	if err != nil {
		return err
	}

	log.Info("creating completion client", slog.String("provider", cfg.Completion.Provider))
	completer, err := completion.New(completion.Config{
		Provider:   cfg.Completion.Provider,
		Endpoint:   cfg.Completion.Endpoint,
		Deployment: cfg.Completion.Deployment,
		APIKey:     cfg.Completion.APIKey,
		APIVersion: cfg.Completion.APIVersion,
	}, prompts)
	if err != nil {
		return err
	}

	var searchLog interface {
		searchpost.SearchLog
		historyget.SearchLog
	}
	if c.RqliteURL != "" {
		databaseURL, err := db.ParseRqliteURL(c.RqliteURL)
		if err != nil {
			return fmt.Errorf("failed to parse rqlite URL: %w", err)
		}
		log.Info("opening database connection", slog.String("url", databaseURL.Redacted()))
		conn, err := gorqlite.Open(databaseURL.DataSourceName())
		if err != nil {
			return fmt.Errorf("failed to open connection: %w", err)
		}
		defer conn.Close()

		log.Info("migrating database schema")
		if err = db.Migrate(databaseURL); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		searchLog = db.New(conn)
	} else {
		log.Info("search history is disabled, set --rqlite-url to enable it")
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/search", searchpost.New(log, searcher, searchLog))
	mux.Handle("POST /api/summary", summarypost.New(log, searcher, completer, c.MaxContextChars))
	mux.Handle("GET /api/document/{id...}", documentget.New(log, searcher))
	mux.Handle("GET /api/history", historyget.New(log, searchLog))

	var h http.Handler = mux
	if c.APIKeysFile != "" {
		apiKeyToUserName, err := auth.LoadFromFile(c.APIKeysFile)
		if err != nil {
			return fmt.Errorf("failed to load API keys: %w", err)
		}
		h = auth.New(apiKeyToUserName, h)
	}
	h = cors.AllowAll().Handler(h)

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: h,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}

type searchService interface {
	search.Searcher
	search.DocumentGetter
}

// newSearcher returns nil if the search settings are placeholders, so that
// requests fail with a server error instead of calling a service that
// doesn't exist.
func newSearcher(log *slog.Logger, cfg config.Config, timeout time.Duration) (s searchService, err error) {
	switch cfg.Search.Backend {
	case config.BackendStub:
		log.Info("using stub search backend", slog.String("file", cfg.Search.StubFile))
		hits, err := search.LoadStubHits(cfg.Search.StubFile)
		if err != nil {
			return nil, err
		}
		s = search.NewStub(log, hits)
	case config.BackendAzure:
		if cfg.SearchUsesPlaceholders() {
			log.Warn("search service is not configured")
			return nil, nil
		}
		log.Info("using Azure AI Search", slog.String("endpoint", cfg.Search.Endpoint), slog.String("index", cfg.Search.Index))
		client := search.New(cfg.Search.Endpoint, cfg.Search.Index, cfg.Search.APIKey,
			search.WithAPIVersion(cfg.Search.APIVersion),
			search.WithSemanticConfiguration(cfg.Search.SemanticConfiguration),
			search.WithTop(cfg.Search.Top),
			search.WithTimeout(timeout))
		s = search.NewLive(log, client)
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Search.Backend)
	}
	return s, nil
}
