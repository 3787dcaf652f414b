package search

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/results"
	"gopkg.in/yaml.v3"
)

//go:embed stub.yaml
var defaultStubHits []byte

type stubFixture struct {
	Value []map[string]any `yaml:"value"`
}

// LoadStubHits reads hits from a YAML file with a top-level value list. If
// name is empty, a built-in set of sample hits is returned.
func LoadStubHits(name string) (hits []map[string]any, err error) {
	data := defaultStubHits
	if name != "" {
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("search: failed to read stub file %s: %w", name, err)
		}
	}
	var f stubFixture
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("search: failed to parse stub hits: %w", err)
	}
	return f.Value, nil
}

func NewStub(log *slog.Logger, hits []map[string]any) Stub {
	return Stub{
		log:  log,
		hits: hits,
	}
}

// Stub serves fixed hits, for development without a search service. The hits
// go through the same normalization as live search results.
type Stub struct {
	log  *slog.Logger
	hits []map[string]any
}

func (s Stub) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matchAll := strings.TrimSpace(query) == "" || strings.TrimSpace(query) == "*"
	q := strings.ToLower(strings.TrimSpace(query))
	value := []any{}
	for _, hit := range s.hits {
		if matchAll || strings.Contains(strings.ToLower(results.Hit(hit).String("content")), q) {
			value = append(value, hit)
		}
	}
	return results.Process(s.log, map[string]any{"value": value}), nil
}

// Document finds a hit by its id field.
func (s Stub) Document(ctx context.Context, key string) (doc map[string]any, ok bool, err error) {
	for _, hit := range s.hits {
		if results.Hit(hit).String("id") == key {
			return hit, true, nil
		}
	}
	return nil, false, nil
}
