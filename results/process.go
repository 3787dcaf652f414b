package results

import (
	"fmt"
	"log/slog"

	"github.com/a-h/searchserver/models"
)

// Process normalizes a decoded search response envelope. Upstream errors and
// unexpected shapes produce an empty list, and hits that fail to transform are
// logged and skipped. The output is in the same order as the input.
func Process(log *slog.Logger, body any) []models.SearchResult {
	results := []models.SearchResult{}

	envelope, ok := body.(map[string]any)
	if !ok {
		log.Error("unexpected search response", slog.String("type", fmt.Sprintf("%T", body)))
		return results
	}
	if upstreamErr, hasError := envelope["error"]; hasError {
		log.Error("search service returned an error", slog.Any("error", upstreamErr))
		return results
	}
	value, ok := envelope["value"]
	if !ok || value == nil {
		return results
	}
	hits, ok := value.([]any)
	if !ok {
		log.Error("unexpected search response value", slog.String("type", fmt.Sprintf("%T", value)))
		return results
	}

	for i, item := range hits {
		hit, ok := asHit(item)
		if !ok {
			log.Warn("skipping search result", slog.Int("index", i), slog.String("type", fmt.Sprintf("%T", item)))
			continue
		}
		r, err := Transform(hit)
		if err != nil {
			log.Warn("skipping search result", slog.Int("index", i), slog.Any("error", err))
			continue
		}
		log.Debug("transformed search result", slog.Int("index", i), slog.String("filename", r.Filename), slog.String("metadataStorageName", r.MetadataStorageName))
		results = append(results, r)
	}
	log.Info("transformed search results", slog.Int("count", len(results)), slog.Int("skipped", len(hits)-len(results)))
	return results
}
