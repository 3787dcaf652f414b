package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/results"
)

// Searcher accepts a query and returns normalized results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// DocumentGetter gets a single raw document by key.
type DocumentGetter interface {
	Document(ctx context.Context, key string) (doc map[string]any, ok bool, err error)
}

func NewLive(log *slog.Logger, client *Client) Live {
	return Live{
		log:    log,
		client: client,
	}
}

// Live searches a hosted index.
type Live struct {
	log    *slog.Logger
	client *Client
}

func (l Live) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	body, err := l.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: query failed: %w", err)
	}
	return results.Process(l.log, body), nil
}

func (l Live) Document(ctx context.Context, key string) (doc map[string]any, ok bool, err error) {
	return l.client.Document(ctx, key)
}
