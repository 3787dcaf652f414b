package main

import (
	"context"
	"fmt"
	"os"

	"github.com/a-h/searchserver/client"
)

type DocumentCommand struct {
	ServerURL string `help:"The URL of the search server." env:"SEARCH_SERVER_URL" default:"http://localhost:8000"`
	APIKey    string `help:"The API key for the search server." env:"SEARCH_SERVER_API_KEY" default:""`
	ID        string `arg:"" help:"The key of the document."`
	Format    string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c DocumentCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL, c.APIKey)
	doc, err := sc.DocumentGet(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get document %q: %w", c.ID, err)
	}
	return write(os.Stdout, c.Format, c.Pretty, doc)
}
