package main

import (
	"context"
	"fmt"
	"os"

	"github.com/a-h/searchserver/client"
	"github.com/a-h/searchserver/models"
)

type SummaryCommand struct {
	ServerURL string `help:"The URL of the search server." env:"SEARCH_SERVER_URL" default:"http://localhost:8000"`
	APIKey    string `help:"The API key for the search server." env:"SEARCH_SERVER_API_KEY" default:""`
	Query     string `arg:"" help:"The query to send."`
	Format    string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c SummaryCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL, c.APIKey)
	resp, err := sc.SummaryPost(ctx, models.SummaryPostRequest{
		Query: c.Query,
	})
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}
	return write(os.Stdout, c.Format, c.Pretty, resp)
}
