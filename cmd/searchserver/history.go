package main

import (
	"context"
	"fmt"
	"os"

	"github.com/a-h/searchserver/client"
)

type HistoryCommand struct {
	ServerURL string `help:"The URL of the search server." env:"SEARCH_SERVER_URL" default:"http://localhost:8000"`
	APIKey    string `help:"The API key for the search server." env:"SEARCH_SERVER_API_KEY" default:""`
	Limit     int    `help:"The maximum number of searches to list." default:"20"`
	Format    string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c HistoryCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL, c.APIKey)
	resp, err := sc.HistoryGet(ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to get search history: %w", err)
	}
	return write(os.Stdout, c.Format, c.Pretty, resp)
}
