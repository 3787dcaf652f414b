package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/a-h/searchserver/models"
)

const (
	summaryLength         = 200
	filenamePreviewLength = 50
)

var ErrInvalidScore = errors.New("invalid @search.score")

// Transform converts a raw hit into a normalized result.
func Transform(hit Hit) (r models.SearchResult, err error) {
	r.Relevance, err = relevance(hit["@search.score"])
	if err != nil {
		return r, err
	}

	content := hit.String("content")
	r.Context = hit.String("context")
	r.Content = content
	if highlight, ok := firstHighlight(hit); ok {
		r.Content = highlight
	}

	if caption, ok := firstCaption(hit); ok {
		r.Summary = caption
	} else if r.Context != "" {
		summary, _ := truncate(r.Context, summaryLength)
		r.Summary = summary + "..."
	}

	fi := ResolveFilename(hit)
	r.Filename = fi.Filename
	r.FilePath = fi.FilePath
	r.MetadataStoragePath = fi.MetadataStoragePath
	r.MetadataStorageName = fi.MetadataStorageName
	r.URL = fi.URL
	if r.Filename == "" {
		preview, truncated := truncate(content, filenamePreviewLength)
		r.Filename = strings.TrimSpace(preview)
		if truncated && r.Filename != "" {
			r.Filename += "..."
		}
	}

	return r, nil
}

func relevance(score any) (f float64, err error) {
	switch score := score.(type) {
	case nil:
		return 0, nil
	case float64:
		f = score
	case json.Number:
		f, err = score.Float64()
	case int:
		f = float64(score)
	case int64:
		f = float64(score)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(score), 64)
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", ErrInvalidScore, score)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}
	// NaN and infinities can't be written as JSON.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidScore, f)
	}
	return f, nil
}

func firstHighlight(hit Hit) (s string, ok bool) {
	highlights, ok := hit["@search.highlights"].(map[string]any)
	if !ok {
		return "", false
	}
	fragments, ok := highlights["content"].([]any)
	if !ok || len(fragments) == 0 {
		return "", false
	}
	return stringify(fragments[0]), true
}

func firstCaption(hit Hit) (s string, ok bool) {
	captions, ok := hit["@search.captions"].([]any)
	if !ok || len(captions) == 0 {
		return "", false
	}
	caption, ok := captions[0].(map[string]any)
	if !ok {
		return "", false
	}
	s = stringify(caption["text"])
	return s, s != ""
}
