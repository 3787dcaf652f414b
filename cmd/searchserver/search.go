package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a-h/searchserver/client"
	"github.com/a-h/searchserver/models"
	"gopkg.in/yaml.v3"
)

type SearchCommand struct {
	ServerURL string `help:"The URL of the search server." env:"SEARCH_SERVER_URL" default:"http://localhost:8000"`
	APIKey    string `help:"The API key for the search server." env:"SEARCH_SERVER_API_KEY" default:""`
	Query     string `arg:"" help:"The query to send."`
	Format    string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c SearchCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL, c.APIKey)
	results, err := sc.SearchPost(ctx, models.SearchPostRequest{
		Query: c.Query,
	})
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}
	return write(os.Stdout, c.Format, c.Pretty, results)
}

func write(w io.Writer, format string, pretty bool, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
