package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/megagames/logview/internal/domain"
)

func TestDedupe(t *testing.T) {
	records := []domain.LogRecord{
		{LogID: "1", UserID: "u1", Message: "A"},
		{LogID: "2", UserID: "u2", Message: "A"},
		{LogID: "3", UserID: "u1", Message: ""},
		{LogID: "4", UserID: "u2", Message: ""},
		{LogID: "5", UserID: "u1", Message: "  A  "},
		{LogID: "6", UserID: "u1", Message: "B"},
	}

	t.Run("none is a pass-through", func(t *testing.T) {
		out := Dedupe(records, domain.DedupeNone)
		assert.Equal(t, records, out)
	})

	t.Run("byMessage keeps first occurrence, empties always pass", func(t *testing.T) {
		out := Dedupe(records, domain.DedupeByMessage)
		ids := make([]string, 0, len(out))
		for _, r := range out {
			ids = append(ids, r.LogID)
		}
		// "A" survives once (trimmed duplicates dropped); both empty
		// messages survive.
		assert.Equal(t, []string{"1", "3", "4", "6"}, ids)
	})

	t.Run("byUserAndMessage keys on the pair", func(t *testing.T) {
		out := Dedupe(records, domain.DedupeByUserAndMessage)
		ids := make([]string, 0, len(out))
		for _, r := range out {
			ids = append(ids, r.LogID)
		}
		// u1/A and u2/A are distinct pairs; record 5 duplicates u1/A.
		assert.Equal(t, []string{"1", "2", "3", "4", "6"}, ids)
	})

	t.Run("order is preserved", func(t *testing.T) {
		out := Dedupe(records, domain.DedupeByMessage)
		for i := 1; i < len(out); i++ {
			assert.Less(t, indexOf(records, out[i-1].LogID), indexOf(records, out[i].LogID))
		}
	})
}

func indexOf(records []domain.LogRecord, id string) int {
	for i, r := range records {
		if r.LogID == id {
			return i
		}
	}
	return -1
}
