// Package records implements the record store gateway: the layer that
// resolves secondary-index entries to full log records against the remote
// tree store.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/megagames/logview/internal/adapter/metrics"
	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/logpath"
)

const defaultChunkSize = 100

// Gateway implements domain.RecordStore over a domain.TreeStore.
type Gateway struct {
	store     domain.TreeStore
	base      string
	logger    *slog.Logger
	metrics   *metrics.ViewerMetrics
	chunkSize int
}

// NewGateway creates a gateway rooted at base. chunkSize bounds how many
// record fetches are in flight at once; zero or negative selects the default.
func NewGateway(store domain.TreeStore, base string, logger *slog.Logger, m *metrics.ViewerMetrics, chunkSize int) *Gateway {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Gateway{
		store:     store,
		base:      base,
		logger:    logger.With("component", "record_gateway"),
		metrics:   m,
		chunkSize: chunkSize,
	}
}

// RecordsAtIndexPath reads up to limit index keys at path (keeping the most
// recent, since keys sort chronologically), decodes each key to a record id,
// and resolves the records concurrently. Individual fetch failures and stale
// index references are tolerated: the affected record is dropped and counted,
// never escalated. Survivors come back sorted ascending by (ts, seq).
func (g *Gateway) RecordsAtIndexPath(ctx context.Context, path string, limit int) ([]domain.LogRecord, error) {
	keys, err := g.store.Keys(ctx, path, limit)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = logpath.DecodeIndexKey(k)
	}

	// Resolved records keep their key slot so completion order cannot leak
	// into the result; the final sort runs after every fetch has settled.
	resolved := make([]*domain.LogRecord, len(ids))
	var failed, stale atomic.Int64

	var eg errgroup.Group
	eg.SetLimit(g.chunkSize)
	for i, id := range ids {
		eg.Go(func() error {
			rec, ok, err := g.RecordByID(ctx, id)
			if err != nil {
				failed.Add(1)
				g.logger.Warn("dropping record after failed fetch", "log_id", id, "error", err)
				return nil
			}
			if !ok {
				stale.Add(1)
				g.logger.Debug("stale index reference", "index_path", path, "log_id", id)
				return nil
			}
			resolved[i] = rec
			return nil
		})
	}
	_ = eg.Wait() // tasks never return errors; failures are per-item

	out := make([]domain.LogRecord, 0, len(resolved))
	for _, r := range resolved {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	if g.metrics != nil {
		g.metrics.RecordsFetchedTotal.Add(float64(len(out)))
		g.metrics.PartialFailuresTotal.Add(float64(failed.Load()))
		g.metrics.StaleIndexRefsTotal.Add(float64(stale.Load()))
	}
	if n := failed.Load() + stale.Load(); n > 0 {
		g.logger.Info("index resolved with drops",
			"index_path", path, "resolved", len(out), "failed", failed.Load(), "stale", stale.Load())
	}
	return out, nil
}

// RecordByID looks up a single record by identifier. Absence is a normal
// outcome, reported via the boolean.
func (g *Gateway) RecordByID(ctx context.Context, id string) (*domain.LogRecord, bool, error) {
	raw, ok, err := g.store.Get(ctx, logpath.RecordPath(g.base, id))
	if err != nil {
		return nil, false, fmt.Errorf("fetch record %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}
	var rec domain.LogRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode record %s: %w", id, err)
	}
	if rec.LogID == "" {
		rec.LogID = id
	}
	return &rec, true, nil
}

// DeleteByPath removes the node at an absolute store path. The path is
// validated before any network call; only paths under this gateway's base are
// deletable.
func (g *Gateway) DeleteByPath(ctx context.Context, path string) error {
	if err := g.validateDeletePath(path); err != nil {
		if g.metrics != nil {
			g.metrics.DeletesTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}
	err := g.store.Remove(ctx, path)
	if g.metrics != nil {
		g.metrics.DeletesTotal.WithLabelValues(deleteStatus(err)).Inc()
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	g.logger.Info("deleted by operator request", "path", path)
	return nil
}

// ChildKeys lists the child keys of an arbitrary store node.
func (g *Gateway) ChildKeys(ctx context.Context, path string) ([]string, error) {
	keys, err := g.store.Keys(ctx, path, 0)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return keys, nil
}

func (g *Gateway) validateDeletePath(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: empty path", domain.ErrInvalidDeletePath)
	case strings.Contains(path, "//"):
		return fmt.Errorf("%w: %q contains an empty segment", domain.ErrInvalidDeletePath, path)
	case strings.Contains(path, ".."):
		return fmt.Errorf("%w: %q contains a parent reference", domain.ErrInvalidDeletePath, path)
	case !strings.HasPrefix(path, g.base+"/"):
		return fmt.Errorf("%w: %q is outside %q", domain.ErrInvalidDeletePath, path, g.base)
	}
	return nil
}

func deleteStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
