package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/export"
	"github.com/megagames/logview/internal/usecase"
)

// ExportHandler streams filtered (optionally grouped) logs as a file
// download in JSON, CSV, or TXT.
type ExportHandler struct {
	retriever         *usecase.RetrieveLogsUseCase
	logger            *slog.Logger
	defaultMonthsBack int
}

func NewExportHandler(retriever *usecase.RetrieveLogsUseCase, logger *slog.Logger, defaultMonthsBack int) *ExportHandler {
	return &ExportHandler{
		retriever:         retriever,
		logger:            logger.With("component", "export_handler"),
		defaultMonthsBack: defaultMonthsBack,
	}
}

// ServeHTTP handles GET /api/logs/export.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}
	f, err := filterFromQuery(r, h.defaultMonthsBack)
	if err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}

	records, err := h.retriever.Retrieve(r.Context(), f)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	records = usecase.Dedupe(records, domain.ParseDedupeMode(r.URL.Query().Get("dedupe")))

	var payload []byte
	grouped := false
	switch groupBy := r.URL.Query().Get("group_by"); groupBy {
	case "":
		payload, err = export.Records(records, format)
	case "similar-errors":
		grouped = true
		payload, err = export.Groups(export.FlattenErrors(usecase.GroupBySimilarErrors(records)), format)
	case "user-errors":
		grouped = true
		payload, err = export.Groups(export.FlattenUserErrors(usecase.GroupByUserThenErrors(records)), format)
	default:
		field, ok := domain.ParseGroupField(groupBy)
		if !ok {
			badRequest(w, h.logger, "unknown group_by "+groupBy)
			return
		}
		grouped = true
		payload, err = export.Groups(export.FlattenExact(usecase.GroupByField(records, field)), format)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	name := "logs"
	if grouped {
		name = "logs_grouped"
	}
	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().UTC().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		h.logger.Warn("failed to write export payload", "error", err)
	}
	h.logger.Info("exported logs", "format", format, "records", len(records), "grouped", grouped)
}
