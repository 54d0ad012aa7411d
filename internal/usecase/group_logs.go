package usecase

import (
	"sort"

	"github.com/megagames/logview/internal/domain"
)

// ExactGroups buckets records by a raw field value. Keys are sorted
// lexicographically; within a bucket the input record order is preserved.
type ExactGroups struct {
	Keys   []string
	Groups map[string][]domain.LogRecord
}

// GroupByField groups records by the exact value of field. Records without a
// value land under "Unknown".
func GroupByField(records []domain.LogRecord, field domain.GroupField) ExactGroups {
	g := ExactGroups{Groups: make(map[string][]domain.LogRecord)}
	for _, r := range records {
		key := field.Value(r)
		if _, ok := g.Groups[key]; !ok {
			g.Keys = append(g.Keys, key)
		}
		g.Groups[key] = append(g.Groups[key], r)
	}
	sort.Strings(g.Keys)
	return g
}

// ErrorGroups buckets records by normalized message signature. Pattern order
// is first-occurrence order, not alphabetical; within a bucket the input
// record order is preserved.
type ErrorGroups struct {
	Patterns []string
	Groups   map[string][]domain.LogRecord
}

// GroupBySimilarErrors iterates records in input order, normalizing each
// message and appending to the bucket for that pattern, creating the bucket
// on first encounter.
func GroupBySimilarErrors(records []domain.LogRecord) ErrorGroups {
	g := ErrorGroups{Groups: make(map[string][]domain.LogRecord)}
	for _, r := range records {
		pattern := NormalizeErrorMessage(r.Message)
		if _, ok := g.Groups[pattern]; !ok {
			g.Patterns = append(g.Patterns, pattern)
		}
		g.Groups[pattern] = append(g.Groups[pattern], r)
	}
	return g
}

// UserErrorGroups is the two-level grouping: user first, then normalized
// error pattern within each user. User order is first-occurrence order.
type UserErrorGroups struct {
	Users  []string
	Groups map[string]ErrorGroups
}

// GroupByUserThenErrors partitions records by user id (missing id maps to
// "Unknown") and groups each partition by similar errors.
func GroupByUserThenErrors(records []domain.LogRecord) UserErrorGroups {
	byUser := make(map[string][]domain.LogRecord)
	var users []string
	for _, r := range records {
		user := r.UserID
		if user == "" {
			user = "Unknown"
		}
		if _, ok := byUser[user]; !ok {
			users = append(users, user)
		}
		byUser[user] = append(byUser[user], r)
	}

	g := UserErrorGroups{Users: users, Groups: make(map[string]ErrorGroups, len(users))}
	for _, user := range users {
		g.Groups[user] = GroupBySimilarErrors(byUser[user])
	}
	return g
}
