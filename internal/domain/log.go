package domain

import "strings"

// LogRecord is the canonical unit stored by the logging producer. Records are
// read-only from the viewer's perspective; the only mutation is operator
// deletion by absolute path.
type LogRecord struct {
	LogID    string `json:"logId"`
	Project  string `json:"project"`
	Server   string `json:"server"`
	Platform string `json:"platform"`
	Date     string `json:"date"` // YYYY-MM-DD
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
	TS       int64  `json:"ts"`  // epoch millis
	Seq      int64  `json:"seq"` // tie-break within identical TS
}

// Before reports whether r sorts ahead of other, ordering by timestamp with
// the sequence number as tie-break.
func (r LogRecord) Before(other LogRecord) bool {
	if r.TS != other.TS {
		return r.TS < other.TS
	}
	return r.Seq < other.Seq
}

// FilterSpec is the query an operator issues. All fields are optional and any
// subset may be present at once. An absent Project falls back to the
// configured default project.
type FilterSpec struct {
	Project     string
	Server      string
	Platform    string
	Date        string // YYYY-MM-DD
	UserID      string
	QuickUserID string // substring match over UserID
	Nickname    string // substring match
	Message     string // substring match
	MonthsBack  int    // bounds the date fan-out when Date is absent; 0 = unbounded
	Limit       int    // cap on index entries read per index path
}

// EffectiveProject resolves the project dimension, falling back to def when
// the filter does not name one.
func (f FilterSpec) EffectiveProject(def string) string {
	if f.Project != "" {
		return f.Project
	}
	return def
}

// DedupeMode selects the optional post-retrieval deduplication stage.
type DedupeMode string

const (
	DedupeNone             DedupeMode = "none"
	DedupeByMessage        DedupeMode = "byMessage"
	DedupeByUserAndMessage DedupeMode = "byUserAndMessage"
)

// ParseDedupeMode maps an operator-supplied mode name to a DedupeMode.
// Unknown or empty input means no deduplication.
func ParseDedupeMode(s string) DedupeMode {
	switch DedupeMode(s) {
	case DedupeByMessage, DedupeByUserAndMessage:
		return DedupeMode(s)
	default:
		return DedupeNone
	}
}

// GroupField names a LogRecord field usable for exact grouping.
type GroupField string

const (
	GroupByServer   GroupField = "server"
	GroupByPlatform GroupField = "platform"
	GroupByDate     GroupField = "date"
	GroupByNickname GroupField = "nickname"
	GroupByUserID   GroupField = "userId"
	GroupByProject  GroupField = "project"
)

// Value extracts the grouping key from a record. Missing values map to
// "Unknown" so sparse records still land in a bucket.
func (g GroupField) Value(r LogRecord) string {
	var v string
	switch g {
	case GroupByServer:
		v = r.Server
	case GroupByPlatform:
		v = r.Platform
	case GroupByDate:
		v = r.Date
	case GroupByNickname:
		v = r.Nickname
	case GroupByUserID:
		v = r.UserID
	case GroupByProject:
		v = r.Project
	}
	if strings.TrimSpace(v) == "" {
		return "Unknown"
	}
	return v
}

// ParseGroupField validates an operator-supplied exact-grouping field name.
func ParseGroupField(s string) (GroupField, bool) {
	switch GroupField(s) {
	case GroupByServer, GroupByPlatform, GroupByDate, GroupByNickname, GroupByUserID, GroupByProject:
		return GroupField(s), true
	}
	return "", false
}
