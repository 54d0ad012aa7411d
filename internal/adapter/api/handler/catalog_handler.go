package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/megagames/logview/internal/usecase"
)

// CatalogHandler lists distinct dimension values for the viewer's filter
// dropdowns.
type CatalogHandler struct {
	catalog *usecase.CatalogUseCase
	logger  *slog.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With("component", "catalog_handler"),
	}
}

// ServeHTTP handles GET /api/catalog/{field}.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]
	project := r.URL.Query().Get("project")

	var (
		values []string
		err    error
	)
	switch field {
	case "servers":
		values, err = h.catalog.Servers(r.Context(), project)
	case "platforms":
		values, err = h.catalog.Platforms(r.Context(), project)
	case "dates":
		values, err = h.catalog.Dates(r.Context(), project)
	case "users":
		values, err = h.catalog.Users(r.Context(), project)
	case "projects":
		values, err = h.catalog.Projects(r.Context())
	default:
		badRequest(w, h.logger, "unknown catalog field "+field)
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{"values": values})
}
