package domain

import "context"

// TreeStore is the contract of the remote hierarchical key-value store. Paths
// are slash-separated; the store supports snapshot reads, ordered key listing
// with a tail limit, and removal. There are no transactions and no secondary
// filtering server-side.
type TreeStore interface {
	// Get reads the value at path. Absence is a normal outcome, reported via
	// the boolean rather than an error.
	Get(ctx context.Context, path string) ([]byte, bool, error)

	// Keys lists the child keys of the node at path, ordered by key. When
	// limitToLast is positive only the last limitToLast keys are returned.
	// A missing node yields an empty list, not an error.
	Keys(ctx context.Context, path string, limitToLast int) ([]string, error)

	// Remove deletes the node at path, including any children. Removing a
	// missing node reports ErrNotFound.
	Remove(ctx context.Context, path string) error
}

// RecordStore is the gateway the retrieval engine reads log records through.
// Implementations resolve secondary-index entries to full records with
// partial-failure tolerance: a single missing or failed record never aborts
// a batch.
type RecordStore interface {
	// RecordsAtIndexPath reads up to limit index entries at path, resolves
	// each referenced record, and returns the survivors sorted ascending by
	// (ts, seq). An empty index yields an empty list, not an error.
	RecordsAtIndexPath(ctx context.Context, path string, limit int) ([]LogRecord, error)

	// RecordByID looks up a single record. Absence is a normal outcome.
	RecordByID(ctx context.Context, id string) (*LogRecord, bool, error)

	// DeleteByPath irreversibly removes the node at an absolute store path.
	// The path is validated before any network call; callers are responsible
	// for operator confirmation.
	DeleteByPath(ctx context.Context, path string) error

	// ChildKeys lists the child keys of an arbitrary store node, used for
	// catalog listings (distinct servers, platforms, dates, users).
	ChildKeys(ctx context.Context, path string) ([]string, error)
}
