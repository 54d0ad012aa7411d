package usecase

import (
	"strings"

	"github.com/megagames/logview/internal/domain"
)

// Dedupe removes records with duplicate keys per the selected mode, keeping
// the first occurrence and preserving input order. Records with an empty
// (after trimming) message always pass: an empty message carries no identity,
// so empties are never deduplicated against each other.
func Dedupe(records []domain.LogRecord, mode domain.DedupeMode) []domain.LogRecord {
	if mode == domain.DedupeNone {
		return records
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.LogRecord, 0, len(records))
	for _, r := range records {
		msg := strings.TrimSpace(r.Message)
		if msg == "" {
			out = append(out, r)
			continue
		}
		key := msg
		if mode == domain.DedupeByUserAndMessage {
			key = r.UserID + "\x00" + msg
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
