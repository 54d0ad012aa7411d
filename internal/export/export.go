// Package export serializes log records to the operator-facing download
// formats: JSON, CSV, and TXT, each with a flat and a grouped variant.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/megagames/logview/internal/domain"
)

// Format names a supported export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// ParseFormat validates an operator-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTXT:
		return FormatTXT, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for HTTP downloads.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// csvHeader is the fixed column order consumed by downstream tooling; do not
// reorder.
const csvHeader = "Timestamp,Server,Platform,Date,User ID,Nickname,Message,Project,Sequence,Log ID"

const txtSeparator = "--------------------------------------------------------------------------------"

// Records serializes a flat record list in the requested format.
func Records(records []domain.LogRecord, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return recordsJSON(records)
	case FormatCSV:
		return recordsCSV(records), nil
	case FormatTXT:
		return recordsTXT(records), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

func recordsJSON(records []domain.LogRecord) ([]byte, error) {
	if records == nil {
		records = []domain.LogRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func recordsCSV(records []domain.LogRecord) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(csvRow(r))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func csvRow(r domain.LogRecord) string {
	fields := []string{
		Timestamp(r.TS),
		r.Server,
		r.Platform,
		r.Date,
		r.UserID,
		r.Nickname,
		r.Message,
		r.Project,
		fmt.Sprintf("%d", r.Seq),
		r.LogID,
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func recordsTXT(records []domain.LogRecord) []byte {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, txtBlock(r))
	}
	return []byte(strings.Join(blocks, "\n\n"))
}

func txtBlock(r domain.LogRecord) string {
	nickname := r.Nickname
	if nickname == "" {
		nickname = "Unknown"
	}
	return fmt.Sprintf("[%s] %s: %s\n  Server: %s | Platform: %s | Date: %s | User ID: %s | Log ID: %s\n  %s",
		Timestamp(r.TS), nickname, r.Message,
		orNA(r.Server), orNA(r.Platform), orNA(r.Date), orNA(r.UserID), orNA(r.LogID),
		txtSeparator)
}

// Timestamp renders an epoch-millis timestamp for operator-facing output.
func Timestamp(ts int64) string {
	if ts == 0 {
		return "N/A"
	}
	return time.UnixMilli(ts).UTC().Format(time.RFC3339)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
