package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/respond"
	"github.com/a-h/searchserver/auth"
	"github.com/a-h/searchserver/db"
	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/search"
)

// SearchLog records searches. It's optional.
type SearchLog interface {
	SearchLogPut(ctx context.Context, entry db.SearchLogEntry) (id string, err error)
}

// New creates the search handler. If searcher is nil, the search service is
// not configured, and requests fail with a server error.
func New(log *slog.Logger, searcher search.Searcher, searchLog SearchLog) Handler {
	return Handler{
		log:       log,
		searcher:  searcher,
		searchLog: searchLog,
		now:       time.Now,
	}
}

type Handler struct {
	log       *slog.Logger
	searcher  search.Searcher
	searchLog SearchLog
	now       func() time.Time
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserOrAnonymous(r)

	var req models.SearchPostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "request must be JSON"}, http.StatusBadRequest)
		return
	}

	if h.searcher == nil {
		h.log.Error("search service is not configured")
		respond.WithJSON(w, models.ErrorResponse{Error: "search service is not configured"}, http.StatusInternalServerError)
		return
	}

	start := h.now()
	results, err := h.searcher.Search(r.Context(), req.Query)
	if err != nil {
		h.log.Error("search failed", slog.String("query", req.Query), slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "search failed"}, http.StatusInternalServerError)
		return
	}
	duration := h.now().Sub(start)
	h.log.Info("search complete", slog.String("user", user), slog.String("query", req.Query), slog.Int("results", len(results)), slog.Duration("duration", duration))

	if h.searchLog != nil {
		_, err = h.searchLog.SearchLogPut(r.Context(), db.SearchLogEntry{
			User:        user,
			Query:       req.Query,
			ResultCount: int64(len(results)),
			DurationMs:  duration.Milliseconds(),
			CreatedAt:   start.UTC(),
		})
		if err != nil {
			h.log.Warn("failed to record search", slog.Any("error", err))
		}
	}

	respond.WithJSON(w, results, http.StatusOK)
}
