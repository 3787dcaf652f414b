package post

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/searchserver/completion"
	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/search"
)

// New creates a handler that searches, then asks the completer to summarize
// the results. If completer is nil, results are returned without a summary.
func New(log *slog.Logger, searcher search.Searcher, completer completion.Completer, maxContextChars int) Handler {
	return Handler{
		log:             log,
		searcher:        searcher,
		completer:       completer,
		maxContextChars: maxContextChars,
	}
}

type Handler struct {
	log             *slog.Logger
	searcher        search.Searcher
	completer       completion.Completer
	maxContextChars int
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryPostRequest
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

	results, err := h.searcher.Search(r.Context(), req.Query)
	if err != nil {
		h.log.Error("search failed", slog.String("query", req.Query), slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "search failed"}, http.StatusInternalServerError)
		return
	}

	resp := models.SummaryPostResponse{
		Results: results,
	}
	if h.completer != nil && len(results) > 0 {
		resp.Summary, err = h.completer.Complete(r.Context(), req.Query, completion.BuildContext(results, h.maxContextChars))
		if err != nil {
			// The results are still useful without a summary.
			h.log.Error("failed to generate summary", slog.String("query", req.Query), slog.Any("error", err))
			resp.Summary = ""
		}
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
