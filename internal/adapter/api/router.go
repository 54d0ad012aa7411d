package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/megagames/logview/internal/adapter/api/handler"
	"github.com/megagames/logview/internal/adapter/api/middleware"
	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/usecase"
)

// NewRouter creates and configures the viewer API router.
func NewRouter(
	logger *slog.Logger,
	retriever *usecase.RetrieveLogsUseCase,
	catalog *usecase.CatalogUseCase,
	records domain.RecordStore,
	defaultMonthsBack int,
) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))

	logsHandler := handler.NewLogsHandler(retriever, logger, defaultMonthsBack)
	exportHandler := handler.NewExportHandler(retriever, logger, defaultMonthsBack)
	deleteHandler := handler.NewDeleteHandler(records, logger)
	catalogHandler := handler.NewCatalogHandler(catalog, logger)

	r.Handle("/api/logs", logsHandler).Methods(http.MethodGet)
	r.Handle("/api/logs/export", exportHandler).Methods(http.MethodGet)
	r.Handle("/api/logs", deleteHandler).Methods(http.MethodDelete)
	r.Handle("/api/catalog/{field}", catalogHandler).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	return r
}
