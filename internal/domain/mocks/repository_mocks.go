package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/megagames/logview/internal/domain"
)

// MockTreeStore is an in-memory implementation of domain.TreeStore for
// testing. Nodes are stored as parent path -> child key -> value, mirroring
// the shape the redis adapter uses.
type MockTreeStore struct {
	mu    sync.Mutex
	Nodes map[string]map[string][]byte

	GetErr    error
	KeysErr   error
	RemoveErr error

	// FailPaths forces Get to fail for specific full paths, independently of
	// GetErr, to exercise per-record partial failures.
	FailPaths map[string]error

	RemovedPaths []string
}

// NewMockTreeStore returns an empty store.
func NewMockTreeStore() *MockTreeStore {
	return &MockTreeStore{
		Nodes:     make(map[string]map[string][]byte),
		FailPaths: make(map[string]error),
	}
}

// Put inserts a value as a child of parent. Empty v entries are valid and are
// used for index nodes where only the key matters.
func (m *MockTreeStore) Put(parent, key string, v []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Nodes[parent] == nil {
		m.Nodes[parent] = make(map[string][]byte)
	}
	m.Nodes[parent][key] = v
}

func (m *MockTreeStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailPaths[path]; ok {
		return nil, false, err
	}
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	parent, key := splitPath(path)
	v, ok := m.Nodes[parent][key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (m *MockTreeStore) Keys(ctx context.Context, path string, limitToLast int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.KeysErr != nil {
		return nil, m.KeysErr
	}
	node := m.Nodes[path]
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if limitToLast > 0 && len(keys) > limitToLast {
		keys = keys[len(keys)-limitToLast:]
	}
	return keys, nil
}

func (m *MockTreeStore) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	parent, key := splitPath(path)
	if _, ok := m.Nodes[parent][key]; !ok {
		if _, subtree := m.Nodes[path]; !subtree {
			return domain.ErrNotFound
		}
	}
	delete(m.Nodes[parent], key)
	delete(m.Nodes, path)
	m.RemovedPaths = append(m.RemovedPaths, path)
	return nil
}

func splitPath(path string) (parent, key string) {
	p := strings.Trim(path, "/")
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

// MockRecordStore is a canned implementation of domain.RecordStore for
// engine, catalog, and handler tests.
type MockRecordStore struct {
	mu sync.Mutex

	// RecordsByPath maps an index path to the records it resolves to.
	RecordsByPath  map[string][]domain.LogRecord
	RecordsByID    map[string]domain.LogRecord
	ChildrenByPath map[string][]string

	FetchErr  error
	DeleteErr error
	ChildErr  error

	FetchedPaths []string
	DeletedPaths []string
}

func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		RecordsByPath:  make(map[string][]domain.LogRecord),
		RecordsByID:    make(map[string]domain.LogRecord),
		ChildrenByPath: make(map[string][]string),
	}
}

func (m *MockRecordStore) RecordsAtIndexPath(ctx context.Context, path string, limit int) ([]domain.LogRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchedPaths = append(m.FetchedPaths, path)
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	recs := m.RecordsByPath[path]
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	out := make([]domain.LogRecord, len(recs))
	copy(out, recs)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (m *MockRecordStore) RecordByID(ctx context.Context, id string) (*domain.LogRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, false, m.FetchErr
	}
	r, ok := m.RecordsByID[id]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (m *MockRecordStore) DeleteByPath(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedPaths = append(m.DeletedPaths, path)
	return nil
}

func (m *MockRecordStore) ChildKeys(ctx context.Context, path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ChildErr != nil {
		return nil, m.ChildErr
	}
	keys := make([]string, len(m.ChildrenByPath[path]))
	copy(keys, m.ChildrenByPath[path])
	return keys, nil
}
