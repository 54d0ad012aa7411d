// Package logpath maps filter dimensions to canonical store paths and decodes
// secondary-index keys back to record identifiers.
package logpath

import (
	"fmt"
	"strings"
)

// IndexKind identifies one of the fixed secondary indexes maintained by the
// ingestion pipeline. The short names double as path prefixes under
// <base>/index/.
type IndexKind string

const (
	KindServerPlatformDate IndexKind = "spd"  // project/server/platform/date
	KindServerDate         IndexKind = "sd"   // project/server/date
	KindPlatformDate       IndexKind = "pd"   // project/platform/date
	KindUserDate           IndexKind = "ud"   // project/userId/date
	KindProjectDate        IndexKind = "d"    // project/date
	KindGlobalUserDate     IndexKind = "gud"  // userId/date
	KindGlobalUser         IndexKind = "gu"   // userId
	KindServerPlatform     IndexKind = "sp"   // project/server/platform
	KindServer             IndexKind = "s"    // project/server
	KindPlatform           IndexKind = "p"    // project/platform
	KindProject            IndexKind = "proj" // project
)

// Dimensions is the tuple of filter dimensions an index path is built from.
// Only the dimensions a kind requires are consulted.
type Dimensions struct {
	Project  string
	Server   string
	Platform string
	Date     string
	UserID   string
}

// segments returns the ordered dimension values for the kind. The order is
// fixed per kind and must match the layout written by the ingestion pipeline.
func (k IndexKind) segments(d Dimensions) []string {
	switch k {
	case KindServerPlatformDate:
		return []string{d.Project, d.Server, d.Platform, d.Date}
	case KindServerDate:
		return []string{d.Project, d.Server, d.Date}
	case KindPlatformDate:
		return []string{d.Project, d.Platform, d.Date}
	case KindUserDate:
		return []string{d.Project, d.UserID, d.Date}
	case KindProjectDate:
		return []string{d.Project, d.Date}
	case KindGlobalUserDate:
		return []string{d.UserID, d.Date}
	case KindGlobalUser:
		return []string{d.UserID}
	case KindServerPlatform:
		return []string{d.Project, d.Server, d.Platform}
	case KindServer:
		return []string{d.Project, d.Server}
	case KindPlatform:
		return []string{d.Project, d.Platform}
	case KindProject:
		return []string{d.Project}
	}
	return nil
}

// EncodeIndexPath builds the canonical index path for the kind under base.
// Every dimension the kind requires must be non-empty; an empty intermediate
// segment would address the wrong node, so it is rejected here rather than
// sent to the store.
func EncodeIndexPath(base string, kind IndexKind, d Dimensions) (string, error) {
	segs := kind.segments(d)
	if segs == nil {
		return "", fmt.Errorf("unknown index kind %q", kind)
	}
	for _, s := range segs {
		if s == "" {
			return "", fmt.Errorf("index kind %q: empty dimension segment", kind)
		}
		if strings.ContainsRune(s, '/') {
			return "", fmt.Errorf("index kind %q: dimension %q contains a path separator", kind, s)
		}
	}
	return IndexRoot(base, kind) + "/" + strings.Join(segs, "/"), nil
}

// IndexRoot returns the root node of an index kind, whose children are the
// first dimension values. Catalog listings read child keys here.
func IndexRoot(base string, kind IndexKind) string {
	return base + "/index/" + string(kind)
}

// RecordPath addresses a flat record entry by its identifier.
func RecordPath(base, logID string) string {
	return base + "/entries/" + logID
}

// DecodeIndexKey extracts the record identifier from a raw index key. Two
// historical encodings coexist in real data: bare "<logId>" and composite
// "<timestamp>_<logId>". A key whose prefix before the first underscore is
// all digits is treated as composite and the suffix is returned; anything
// else is returned unchanged, which covers identifiers that themselves
// contain underscores or pipes.
//
// Known false-positive risk: a genuine identifier that begins with a purely
// numeric segment followed by an underscore decodes to its suffix. No such
// identifiers are produced today; there is no schema-version flag to detect
// them.
func DecodeIndexKey(raw string) string {
	i := strings.IndexByte(raw, '_')
	if i <= 0 || i == len(raw)-1 {
		return raw
	}
	for _, c := range raw[:i] {
		if c < '0' || c > '9' {
			return raw
		}
	}
	return raw[i+1:]
}
