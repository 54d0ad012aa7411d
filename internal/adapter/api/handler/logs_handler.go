package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/export"
	"github.com/megagames/logview/internal/usecase"
)

// LogsHandler serves the viewer's log query endpoint: filtered retrieval with
// optional deduplication and grouping.
type LogsHandler struct {
	retriever         *usecase.RetrieveLogsUseCase
	logger            *slog.Logger
	defaultMonthsBack int
}

func NewLogsHandler(retriever *usecase.RetrieveLogsUseCase, logger *slog.Logger, defaultMonthsBack int) *LogsHandler {
	return &LogsHandler{
		retriever:         retriever,
		logger:            logger.With("component", "logs_handler"),
		defaultMonthsBack: defaultMonthsBack,
	}
}

// filterFromQuery builds a FilterSpec from request query parameters.
func filterFromQuery(r *http.Request, defaultMonthsBack int) (domain.FilterSpec, error) {
	q := r.URL.Query()
	f := domain.FilterSpec{
		Project:     q.Get("project"),
		Server:      q.Get("server"),
		Platform:    q.Get("platform"),
		Date:        q.Get("date"),
		UserID:      q.Get("user_id"),
		QuickUserID: q.Get("quick_user_id"),
		Nickname:    q.Get("nickname"),
		Message:     q.Get("message"),
		MonthsBack:  defaultMonthsBack,
	}
	if v := q.Get("months_back"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errBadParam{"months_back", v}
		}
		f.MonthsBack = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errBadParam{"limit", v}
		}
		f.Limit = n
	}
	return f, nil
}

type errBadParam struct {
	name, value string
}

func (e errBadParam) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for " + e.name
}

// ServeHTTP handles GET /api/logs.
func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	groupBy := r.URL.Query().Get("group_by")
	switch groupBy {
	case "":
		if records == nil {
			records = []domain.LogRecord{}
		}
		writeJSON(w, h.logger, http.StatusOK, map[string]any{
			"count":   len(records),
			"records": records,
		})
	case "similar-errors":
		groups := export.FlattenErrors(usecase.GroupBySimilarErrors(records))
		writeJSON(w, h.logger, http.StatusOK, map[string]any{
			"count":  len(records),
			"groups": groups,
		})
	case "user-errors":
		g := usecase.GroupByUserThenErrors(records)
		users := make([]userGroups, 0, len(g.Users))
		for _, u := range g.Users {
			users = append(users, userGroups{
				UserID: u,
				Groups: export.FlattenErrors(g.Groups[u]),
			})
		}
		writeJSON(w, h.logger, http.StatusOK, map[string]any{
			"count": len(records),
			"users": users,
		})
	default:
		field, ok := domain.ParseGroupField(groupBy)
		if !ok {
			badRequest(w, h.logger, "unknown group_by "+strconv.Quote(groupBy))
			return
		}
		groups := export.FlattenExact(usecase.GroupByField(records, field))
		writeJSON(w, h.logger, http.StatusOK, map[string]any{
			"count":  len(records),
			"groups": groups,
		})
	}
}

type userGroups struct {
	UserID string         `json:"userId"`
	Groups []export.Group `json:"groups"`
}
