package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"mercator-hq/minerva/pkg/audit"
)

// CSVExporter exports audit entries to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes audit entries to the provided writer in CSV format.
// Each entry becomes one row; per-constraint results are flattened to
// counts and a semicolon-separated list of unsatisfied constraint ids.
func (e *CSVExporter) Export(ctx context.Context, entries []*audit.Entry, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(e.getHeaderRow()); err != nil {
			return audit.NewExportError("csv", len(entries), err)
		}
	}

	for _, entry := range entries {
		if err := writer.Write(e.entryToRow(entry)); err != nil {
			return audit.NewExportError("csv", len(entries), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return audit.NewExportError("csv", len(entries), err)
	}
	return nil
}

// getHeaderRow returns the CSV header row.
func (e *CSVExporter) getHeaderRow() []string {
	return []string{
		"id", "timestamp",
		"verdict_id", "evaluated_at", "allowed",
		"action", "target_entity",
		"results", "blocked", "warnings", "unsatisfied_constraints",
		"summary",
	}
}

// entryToRow converts an audit entry to a CSV row.
func (e *CSVExporter) entryToRow(entry *audit.Entry) []string {
	formatTime := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	row := []string{
		fmt.Sprintf("%d", entry.ID),
		formatTime(entry.Timestamp),
		"", "", "", "", "", "0", "0", "0", "", "",
	}

	v := entry.Verdict
	if v == nil {
		return row
	}

	var unsatisfied []string
	for _, r := range v.Results {
		if !r.Satisfied {
			unsatisfied = append(unsatisfied, r.ConstraintID)
		}
	}

	row[2] = v.ID
	row[3] = formatTime(v.EvaluatedAt)
	row[4] = fmt.Sprintf("%t", v.Allowed)
	if v.Context != nil {
		row[5] = v.Context.IntendedAction
		row[6] = v.Context.TargetEntity
	}
	row[7] = fmt.Sprintf("%d", len(v.Results))
	row[8] = fmt.Sprintf("%d", len(v.BlockedResults()))
	row[9] = fmt.Sprintf("%d", len(v.WarningResults()))
	row[10] = strings.Join(unsatisfied, ";")
	row[11] = v.Summary

	return row
}
