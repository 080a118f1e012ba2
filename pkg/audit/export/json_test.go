package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mercator-hq/minerva/pkg/audit"
	"mercator-hq/minerva/pkg/constraint"
)

func sampleEntries() []*audit.Entry {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []*audit.Entry{
		{
			ID:        1,
			Timestamp: ts,
			Verdict: &constraint.Verdict{
				ID:          "a3f1c200-0000-0000-0000-000000000001",
				Allowed:     true,
				Summary:     "All constraints satisfied",
				EvaluatedAt: ts,
				Context: &constraint.Context{
					IntendedAction: "resolve",
					TargetEntity:   "itsm:Incident:INC001",
				},
			},
		},
		{
			ID:        2,
			Timestamp: ts.Add(time.Minute),
			Verdict: &constraint.Verdict{
				ID:      "a3f1c200-0000-0000-0000-000000000002",
				Allowed: false,
				Results: []*constraint.Result{
					{
						ConstraintID: "change-freeze",
						Satisfied:    false,
						Severity:     constraint.SeverityBlock,
						Explanation:  "Deployment during change freeze window",
					},
				},
				Summary:     "BLOCKED by 1 constraint(s): Deployment during change freeze window",
				EvaluatedAt: ts.Add(time.Minute),
				Context: &constraint.Context{
					IntendedAction: "deploy",
					TargetEntity:   "itsm:Service:SVC001",
				},
			},
		},
	}
}

func TestJSONExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewJSONExporter(false)

	if err := exporter.Export(context.Background(), nil, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if buf.String() != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestJSONExport_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewJSONExporter(false)

	if err := exporter.Export(context.Background(), sampleEntries(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded []*audit.Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0].ID != 1 || decoded[1].ID != 2 {
		t.Errorf("entry ids lost in export: %d, %d", decoded[0].ID, decoded[1].ID)
	}
	if decoded[1].Verdict == nil || decoded[1].Verdict.Allowed {
		t.Error("blocked verdict lost in export")
	}
	if decoded[1].Verdict.Context.IntendedAction != "deploy" {
		t.Errorf("context lost in export: %+v", decoded[1].Verdict.Context)
	}
}

func TestJSONExport_Pretty(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewJSONExporter(true)

	if err := exporter.Export(context.Background(), sampleEntries(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("pretty output should contain indentation")
	}
	var decoded []*audit.Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("pretty output is not valid JSON: %v", err)
	}
}

func TestJSONExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(ctx, sampleEntries(), &buf); err == nil {
		t.Error("expected error from cancelled context")
	}
}
