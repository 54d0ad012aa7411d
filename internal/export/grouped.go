package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/usecase"
)

// Group is the format-independent shape of one export group: the key, the
// per-group count, a representative sample message, and the member records in
// their original order.
type Group struct {
	Key     string             `json:"group"`
	Count   int                `json:"count"`
	Sample  string             `json:"sample"`
	Records []domain.LogRecord `json:"records"`
}

// FlattenExact converts exact-field groups to the export shape, preserving
// the lexicographic key order.
func FlattenExact(g usecase.ExactGroups) []Group {
	out := make([]Group, 0, len(g.Keys))
	for _, k := range g.Keys {
		out = append(out, newGroup(k, g.Groups[k]))
	}
	return out
}

// FlattenErrors converts similar-error groups to the export shape, preserving
// first-occurrence pattern order.
func FlattenErrors(g usecase.ErrorGroups) []Group {
	out := make([]Group, 0, len(g.Patterns))
	for _, p := range g.Patterns {
		out = append(out, newGroup(p, g.Groups[p]))
	}
	return out
}

// FlattenUserErrors flattens the two-level user grouping into one group per
// (user, pattern) pair, keyed "user: pattern". Users keep their
// first-occurrence order and patterns theirs within each user.
func FlattenUserErrors(g usecase.UserErrorGroups) []Group {
	var out []Group
	for _, user := range g.Users {
		errs := g.Groups[user]
		for _, p := range errs.Patterns {
			out = append(out, newGroup(user+": "+p, errs.Groups[p]))
		}
	}
	return out
}

func newGroup(key string, records []domain.LogRecord) Group {
	sample := ""
	if len(records) > 0 {
		sample = records[0].Message
	}
	return Group{Key: key, Count: len(records), Sample: sample, Records: records}
}

// Groups serializes grouped records in the requested format.
func Groups(groups []Group, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if groups == nil {
			groups = []Group{}
		}
		return json.MarshalIndent(groups, "", "  ")
	case FormatCSV:
		return groupsCSV(groups), nil
	case FormatTXT:
		return groupsTXT(groups), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// groupsCSV prefixes every record row with the group key, count, and sample
// so the grouping survives a flat spreadsheet import.
func groupsCSV(groups []Group) []byte {
	var b strings.Builder
	b.WriteString(`"Group","Count","Sample Message",` + csvHeader)
	b.WriteByte('\n')
	for _, g := range groups {
		prefix := fmt.Sprintf(`"%s","%d","%s",`,
			strings.ReplaceAll(g.Key, `"`, `""`), g.Count, strings.ReplaceAll(g.Sample, `"`, `""`))
		for _, r := range g.Records {
			b.WriteString(prefix)
			b.WriteString(csvRow(r))
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

func groupsTXT(groups []Group) []byte {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== %s (%d logs) ===\n", g.Key, g.Count)
		fmt.Fprintf(&b, "Sample: %s\n\n", g.Sample)
		b.Write(recordsTXT(g.Records))
	}
	return []byte(b.String())
}
