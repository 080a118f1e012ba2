package audit

import (
	"sync"
	"time"

	"mercator-hq/minerva/pkg/constraint"
)

// Log is the append-only, in-memory audit trail. It is safe for concurrent
// use; the sequential id is allocated under the same lock as the append, so
// no two entries can ever share an id or appear out of order.
type Log struct {
	mu      sync.RWMutex
	entries []*Entry
	nextID  uint64

	// Running counters, kept separate from the retained entries so
	// retention pruning never changes historical totals.
	total   uint64
	allowed uint64
	blocked uint64
}

// NewLog creates an empty audit log.
func NewLog() *Log {
	return &Log{nextID: 1}
}

// Append records a verdict and returns the new entry. The entry id is the
// next value in the sequence, starting at 1; ids are never reused, even
// after pruning.
func (l *Log) Append(verdict *constraint.Verdict) *Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := &Entry{
		ID:        l.nextID,
		Timestamp: time.Now(),
		Verdict:   verdict,
	}
	l.nextID++
	l.entries = append(l.entries, entry)

	l.total++
	if verdict != nil && verdict.Allowed {
		l.allowed++
	} else {
		l.blocked++
	}

	return entry
}

// Snapshot returns a copy of all retained entries in append order. The
// returned slice is the caller's to keep; the entries themselves are treated
// as immutable by convention.
func (l *Log) Snapshot() []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]*Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Query returns the retained entries matching the filter, in append order.
func (l *Log) Query(filter Filter) []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []*Entry
	for _, entry := range l.entries {
		if filter.Matches(entry) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Summary returns the running counters. Total always equals the number of
// appends ever made, regardless of retention pruning.
func (l *Log) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Summary{Total: l.total, Allowed: l.allowed, Blocked: l.blocked}
}

// Len returns the number of currently retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// PruneBefore removes retained entries older than the cutoff and returns how
// many were removed. Entries are in append order, so the scan stops at the
// first entry at or after the cutoff. Surviving entries keep their ids.
func (l *Log) PruneBefore(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := 0
	for idx < len(l.entries) && l.entries[idx].Timestamp.Before(cutoff) {
		idx++
	}
	if idx == 0 {
		return 0
	}
	l.entries = append([]*Entry(nil), l.entries[idx:]...)
	return idx
}

// TrimToMax removes the oldest retained entries until at most max remain and
// returns how many were removed. A non-positive max removes nothing.
func (l *Log) TrimToMax(max int) int {
	if max <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	excess := len(l.entries) - max
	if excess <= 0 {
		return 0
	}
	l.entries = append([]*Entry(nil), l.entries[excess:]...)
	return excess
}
