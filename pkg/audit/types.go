package audit

import (
	"context"
	"io"
	"time"

	"mercator-hq/minerva/pkg/constraint"
)

// Entry is one immutable audit record: a sequential id, the time of the
// append, and the full verdict of one evaluation call.
type Entry struct {
	// ID is the monotonically increasing sequence number, starting at 1.
	ID uint64 `json:"id"`

	// Timestamp is when the entry was appended.
	Timestamp time.Time `json:"timestamp"`

	// Verdict is the complete outcome of the evaluation, including its
	// originating context.
	Verdict *constraint.Verdict `json:"verdict"`
}

// Summary is the aggregate view of the trail.
type Summary struct {
	// Total is the number of evaluations ever recorded, including entries
	// since removed by retention pruning.
	Total uint64 `json:"total"`

	// Allowed counts recorded verdicts with Allowed = true.
	Allowed uint64 `json:"allowed"`

	// Blocked counts recorded verdicts with Allowed = false.
	Blocked uint64 `json:"blocked"`
}

// Filter selects entries by exact match on the verdict's intended action
// and/or target entity id. Empty fields match everything; both set means
// both must match.
type Filter struct {
	// Action filters by Context.IntendedAction.
	Action string

	// EntityID filters by Context.TargetEntity.
	EntityID string
}

// Matches reports whether an entry passes the filter.
func (f Filter) Matches(entry *Entry) bool {
	if entry.Verdict == nil || entry.Verdict.Context == nil {
		return f.Action == "" && f.EntityID == ""
	}
	if f.Action != "" && entry.Verdict.Context.IntendedAction != f.Action {
		return false
	}
	if f.EntityID != "" && entry.Verdict.Context.TargetEntity != f.EntityID {
		return false
	}
	return true
}

// Exporter writes audit entries to a destination in some format.
type Exporter interface {
	// Export writes the entries to w. Returns an error if the export fails.
	Export(ctx context.Context, entries []*Entry, w io.Writer) error
}
