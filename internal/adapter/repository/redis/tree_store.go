// Package redis adapts a redis instance to the domain.TreeStore contract.
//
// The hierarchical tree is laid out as one hash per node: the hash key is the
// node's slash-separated path and the hash fields are the child keys. A leaf
// value therefore lives as a field of its parent's hash, and listing a node's
// children is a single HKEYS.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/megagames/logview/internal/domain"
)

// TreeStore implements domain.TreeStore on top of a redis client.
type TreeStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTreeStore creates a redis-backed TreeStore.
func NewTreeStore(client *redis.Client, logger *slog.Logger) *TreeStore {
	return &TreeStore{
		client: client,
		logger: logger.With("component", "redis_tree_store"),
	}
}

// Ping verifies connectivity, used at startup and by health checks.
func (s *TreeStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Get reads the value at path via HGET on the parent node.
func (s *TreeStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	parent, leaf, err := splitPath(path)
	if err != nil {
		return nil, false, err
	}
	v, err := s.client.HGet(ctx, parent, leaf).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, s.wrap("HGET", path, err)
	}
	return []byte(v), true, nil
}

// Keys lists the child keys of the node at path, ordered by key. A missing
// node yields an empty list.
func (s *TreeStore) Keys(ctx context.Context, path string, limitToLast int) ([]string, error) {
	keys, err := s.client.HKeys(ctx, strings.Trim(path, "/")).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, s.wrap("HKEYS", path, err)
	}
	sort.Strings(keys)
	if limitToLast > 0 && len(keys) > limitToLast {
		keys = keys[len(keys)-limitToLast:]
	}
	return keys, nil
}

// Remove deletes the node at path: the field on the parent hash plus the
// node's own subtree hash, in one pipeline. Removing a node that does not
// exist reports domain.ErrNotFound.
func (s *TreeStore) Remove(ctx context.Context, path string) error {
	parent, leaf, err := splitPath(path)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	delField := pipe.HDel(ctx, parent, leaf)
	delNode := pipe.Del(ctx, strings.Trim(path, "/"))
	if _, err := pipe.Exec(ctx); err != nil {
		return s.wrap("remove", path, err)
	}

	if delField.Val() == 0 && delNode.Val() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	s.logger.Info("removed node", "path", path)
	return nil
}

func (s *TreeStore) wrap(op, path string, err error) error {
	if isNetworkError(err) {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrStoreUnavailable, op, path, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

func splitPath(path string) (parent, leaf string, err error) {
	p := strings.Trim(path, "/")
	i := strings.LastIndexByte(p, '/')
	if i <= 0 || i == len(p)-1 {
		return "", "", fmt.Errorf("path %q has no parent node", path)
	}
	return p[:i], p[i+1:], nil
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
