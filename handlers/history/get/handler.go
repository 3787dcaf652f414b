package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/respond"
	"github.com/a-h/searchserver/auth"
	"github.com/a-h/searchserver/db"
	"github.com/a-h/searchserver/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type SearchLog interface {
	SearchLogList(ctx context.Context, user string, limit int) (entries []db.SearchLogEntry, err error)
}

// New creates the search history handler. If searchLog is nil, history is
// disabled and requests get a 404.
func New(log *slog.Logger, searchLog SearchLog) Handler {
	return Handler{
		log:       log,
		searchLog: searchLog,
	}
}

type Handler struct {
	log       *slog.Logger
	searchLog SearchLog
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.searchLog == nil {
		respond.WithJSON(w, models.ErrorResponse{Error: "search history is not enabled"}, http.StatusNotFound)
		return
	}

	limit := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 {
			respond.WithJSON(w, models.ErrorResponse{Error: "limit must be a positive number"}, http.StatusBadRequest)
			return
		}
		limit = min(limit, maxLimit)
	}

	user := auth.GetUserOrAnonymous(r)
	entries, err := h.searchLog.SearchLogList(r.Context(), user, limit)
	if err != nil {
		h.log.Error("failed to list search history", slog.String("user", user), slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "failed to list search history"}, http.StatusInternalServerError)
		return
	}

	resp := models.HistoryGetResponse{
		Entries: make([]models.HistoryEntry, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = models.HistoryEntry{
			ID:          e.ID,
			Query:       e.Query,
			ResultCount: e.ResultCount,
			DurationMs:  e.DurationMs,
			CreatedAt:   e.CreatedAt,
		}
	}
	respond.WithJSON(w, resp, http.StatusOK)
}
