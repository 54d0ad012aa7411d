package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/domain/mocks"
	"github.com/megagames/logview/internal/logpath"
)

func newTestGateway(store domain.TreeStore) *Gateway {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGateway(store, "logs", logger, nil, 0)
}

func putRecord(t *testing.T, store *mocks.MockTreeStore, rec domain.LogRecord) {
	t.Helper()
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	store.Put("logs/entries", rec.LogID, raw)
}

func TestRecordsAtIndexPath(t *testing.T) {
	ctx := context.Background()

	t.Run("empty index yields empty result, not an error", func(t *testing.T) {
		g := newTestGateway(mocks.NewMockTreeStore())
		recs, err := g.RecordsAtIndexPath(ctx, "logs/index/d/Mega/2024-09-25", 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("expected no records, got %d", len(recs))
		}
	})

	t.Run("resolves, decodes legacy keys, sorts by ts then seq", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		idx := "logs/index/d/Mega/2024-09-25"
		putRecord(t, store, domain.LogRecord{LogID: "a", TS: 300, Seq: 1})
		putRecord(t, store, domain.LogRecord{LogID: "b", TS: 100, Seq: 2})
		putRecord(t, store, domain.LogRecord{LogID: "c", TS: 100, Seq: 1})
		store.Put(idx, "a", nil)
		store.Put(idx, "1714060800000_b", nil) // legacy composite key
		store.Put(idx, "c", nil)

		g := newTestGateway(store)
		recs, err := g.RecordsAtIndexPath(ctx, idx, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"c", "b", "a"}
		if len(recs) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(recs))
		}
		for i, id := range want {
			if recs[i].LogID != id {
				t.Errorf("position %d: got %q, want %q", i, recs[i].LogID, id)
			}
		}
	})

	t.Run("partial fetch failures are dropped, not fatal", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		idx := "logs/index/d/Mega/2024-09-25"
		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("r%d", i)
			store.Put(idx, id, nil)
		}
		// Only r1 and r3 resolve: r0 and r2 fail hard, r4 is a stale ref.
		putRecord(t, store, domain.LogRecord{LogID: "r1", TS: 200})
		putRecord(t, store, domain.LogRecord{LogID: "r3", TS: 100})
		store.FailPaths[logpath.RecordPath("logs", "r0")] = errors.New("read timeout")
		store.FailPaths[logpath.RecordPath("logs", "r2")] = errors.New("read timeout")

		g := newTestGateway(store)
		recs, err := g.RecordsAtIndexPath(ctx, idx, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 surviving records, got %d", len(recs))
		}
		if recs[0].LogID != "r3" || recs[1].LogID != "r1" {
			t.Errorf("survivors out of order: %q, %q", recs[0].LogID, recs[1].LogID)
		}
	})

	t.Run("limit keeps the most recent keys", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		idx := "logs/index/d/Mega/2024-09-25"
		for i := 0; i < 250; i++ {
			id := fmt.Sprintf("id-%04d", i)
			store.Put(idx, id, nil)
			putRecord(t, store, domain.LogRecord{LogID: id, Date: "2024-09-25", TS: int64(1000 + i)})
		}

		g := newTestGateway(store)
		recs, err := g.RecordsAtIndexPath(ctx, idx, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recs) != 200 {
			t.Fatalf("expected 200 records, got %d", len(recs))
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].TS < recs[i-1].TS {
				t.Fatalf("records not ascending at %d: %d < %d", i, recs[i].TS, recs[i-1].TS)
			}
		}
		if recs[0].LogID != "id-0050" {
			t.Errorf("expected tail of the key range to survive, first is %q", recs[0].LogID)
		}
	})

	t.Run("index read failure is fatal", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		store.KeysErr = domain.ErrStoreUnavailable
		g := newTestGateway(store)
		_, err := g.RecordsAtIndexPath(ctx, "logs/index/d/Mega/2024-09-25", 200)
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestRecordByID(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockTreeStore()
	putRecord(t, store, domain.LogRecord{LogID: "a", Message: "hello"})
	g := newTestGateway(store)

	t.Run("present", func(t *testing.T) {
		rec, ok, err := g.RecordByID(ctx, "a")
		if err != nil || !ok {
			t.Fatalf("expected record, got ok=%v err=%v", ok, err)
		}
		if rec.Message != "hello" {
			t.Errorf("unexpected message %q", rec.Message)
		}
	})

	t.Run("absent is not an error", func(t *testing.T) {
		rec, ok, err := g.RecordByID(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || rec != nil {
			t.Error("expected absence")
		}
	})
}

func TestDeleteByPath(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed paths before any store call", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		store.RemoveErr = errors.New("store must not be called")
		g := newTestGateway(store)

		for _, p := range []string{"", "logs//entries/a", "logs/../other", "other/entries/a"} {
			if err := g.DeleteByPath(ctx, p); !errors.Is(err, domain.ErrInvalidDeletePath) {
				t.Errorf("path %q: expected ErrInvalidDeletePath, got %v", p, err)
			}
		}
		if len(store.RemovedPaths) != 0 {
			t.Error("store was called for an invalid path")
		}
	})

	t.Run("deletes a record node", func(t *testing.T) {
		store := mocks.NewMockTreeStore()
		putRecord(t, store, domain.LogRecord{LogID: "a"})
		g := newTestGateway(store)
		if err := g.DeleteByPath(ctx, "logs/entries/a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "logs/entries/a"); ok {
			t.Error("record still present after delete")
		}
	})

	t.Run("missing node reports not found", func(t *testing.T) {
		g := newTestGateway(mocks.NewMockTreeStore())
		if err := g.DeleteByPath(ctx, "logs/entries/nope"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
