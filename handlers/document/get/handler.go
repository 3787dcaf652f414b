package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/search"
)

func New(log *slog.Logger, documents search.DocumentGetter) Handler {
	return Handler{
		log:       log,
		documents: documents,
	}
}

type Handler struct {
	log       *slog.Logger
	documents search.DocumentGetter
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respond.WithJSON(w, models.ErrorResponse{Error: "document id is required"}, http.StatusBadRequest)
		return
	}
	if h.documents == nil {
		h.log.Error("search service is not configured")
		respond.WithJSON(w, models.ErrorResponse{Error: "search service is not configured"}, http.StatusInternalServerError)
		return
	}

	doc, ok, err := h.documents.Document(r.Context(), id)
	if err != nil {
		h.log.Error("failed to get document", slog.String("id", id), slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: "failed to get document"}, http.StatusInternalServerError)
		return
	}
	if !ok {
		respond.WithJSON(w, models.ErrorResponse{Error: "document not found"}, http.StatusNotFound)
		return
	}

	respond.WithJSON(w, doc, http.StatusOK)
}
