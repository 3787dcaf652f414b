package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/a-h/searchserver/config"
	"github.com/a-h/searchserver/search"
)

// Fields the results are built from.
var inspectFields = []string{"content", "filename", "filepath", "metadata_storage_path", "metadata_storage_name", "path", "url"}

type InspectCommand struct {
	EnvFile  string `help:"The .env file to read service settings from, if it exists." env:"ENV_FILE" default:".env"`
	Format   string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty   bool   `help:"Pretty print the JSON output." default:"true"`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c InspectCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	cfg, err := config.Load(os.LookupEnv, c.EnvFile)
	if err != nil {
		return err
	}
	if cfg.Search.Backend != config.BackendAzure {
		return fmt.Errorf("inspect requires the %q search backend, got %q", config.BackendAzure, cfg.Search.Backend)
	}
	if cfg.SearchUsesPlaceholders() {
		return fmt.Errorf("search service is not configured: %w", config.ErrMissingSettings)
	}

	sc := search.New(cfg.Search.Endpoint, cfg.Search.Index, cfg.Search.APIKey,
		search.WithAPIVersion(cfg.Search.APIVersion))
	def, err := sc.Index(ctx)
	if err != nil {
		return fmt.Errorf("failed to get index %q: %w", cfg.Search.Index, err)
	}

	for _, name := range inspectFields {
		log.Info("field", slog.String("name", name), slog.Bool("defined", def.HasField(name)))
	}
	var metadata []string
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "metadata_") {
			metadata = append(metadata, f.Name)
		}
	}
	log.Info("metadata fields", slog.Any("names", metadata))
	return write(os.Stdout, c.Format, c.Pretty, def)
}
