package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/megagames/logview/internal/adapter/metrics"
	"github.com/megagames/logview/internal/domain"
)

// RetrieveLogsUseCase orchestrates index selection and record resolution,
// then applies the residual text filters an index lookup cannot serve.
type RetrieveLogsUseCase struct {
	records      domain.RecordStore
	selector     *IndexSelector
	logger       *slog.Logger
	metrics      *metrics.ViewerMetrics
	limiter      *rate.Limiter
	defaultLimit int
	now          func() time.Time
}

// NewRetrieveLogsUseCase creates the retrieval engine. fanoutPerSec throttles
// the multi-date fallback's sub-queries; zero or negative disables the
// throttle.
func NewRetrieveLogsUseCase(records domain.RecordStore, selector *IndexSelector, logger *slog.Logger, m *metrics.ViewerMetrics, fanoutPerSec float64, defaultLimit int) *RetrieveLogsUseCase {
	var limiter *rate.Limiter
	if fanoutPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(fanoutPerSec), 1)
	}
	if defaultLimit <= 0 {
		defaultLimit = 200
	}
	return &RetrieveLogsUseCase{
		records:      records,
		selector:     selector,
		logger:       logger.With("component", "retrieve_logs"),
		metrics:      m,
		limiter:      limiter,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// Retrieve resolves the filter set to log records, sorted ascending by
// (ts, seq). An empty result is a normal outcome. A failure at the index-read
// level aborts the whole call; only individual record fetches are tolerated,
// inside the gateway.
func (uc *RetrieveLogsUseCase) Retrieve(ctx context.Context, f domain.FilterSpec) ([]domain.LogRecord, error) {
	start := uc.now()
	plan, err := uc.selector.Select(f, start)
	if err != nil {
		return nil, fmt.Errorf("select index: %w", err)
	}
	if len(plan.Paths) == 0 {
		uc.logger.Debug("no resolvable strategy for filter set")
		return nil, nil
	}
	if uc.metrics != nil {
		uc.metrics.IndexReadsTotal.WithLabelValues(plan.Strategy).Add(float64(len(plan.Paths)))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}

	fanout := len(plan.Paths) > 1
	var all []domain.LogRecord
	for _, path := range plan.Paths {
		if fanout && uc.limiter != nil {
			if err := uc.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		recs, err := uc.records.RecordsAtIndexPath(ctx, path, limit)
		if err != nil {
			return nil, fmt.Errorf("retrieve logs via %s: %w", plan.Strategy, err)
		}
		all = append(all, recs...)
	}

	all = filterResidual(all, f)

	// Each sub-query comes back sorted, but the fan-out concatenates in date
	// order; re-establish chronological order across the whole set.
	sort.SliceStable(all, func(i, j int) bool { return all[i].Before(all[j]) })

	uc.logger.Info("retrieved logs",
		"strategy", plan.Strategy,
		"paths", len(plan.Paths),
		"records", len(all),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return all, nil
}

// filterResidual applies the substring filters that no index can serve, as
// AND conditions on top of the index-level filtering.
func filterResidual(records []domain.LogRecord, f domain.FilterSpec) []domain.LogRecord {
	if f.Nickname == "" && f.Message == "" && f.QuickUserID == "" {
		return records
	}
	out := records[:0]
	for _, r := range records {
		if f.Nickname != "" && !containsFold(r.Nickname, f.Nickname) {
			continue
		}
		if f.Message != "" && !containsFold(r.Message, f.Message) {
			continue
		}
		if f.QuickUserID != "" && !containsFold(r.UserID, f.QuickUserID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
