package handler

import (
	"log/slog"
	"net/http"

	"github.com/megagames/logview/internal/domain"
)

// DeleteHandler removes a store node by absolute path. Deletion is
// irreversible and fire-and-forget; the browser side is responsible for the
// confirmation dialog, this endpoint only validates the path.
type DeleteHandler struct {
	records domain.RecordStore
	logger  *slog.Logger
}

func NewDeleteHandler(records domain.RecordStore, logger *slog.Logger) *DeleteHandler {
	return &DeleteHandler{
		records: records,
		logger:  logger.With("component", "delete_handler"),
	}
}

// ServeHTTP handles DELETE /api/logs.
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if err := h.records.DeleteByPath(r.Context(), path); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.logger.Info("operator deleted path", "path", path)
	w.WriteHeader(http.StatusNoContent)
}
