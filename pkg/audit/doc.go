// Package audit provides the append-only audit trail for constraint
// evaluations.
//
// Every call to the constraint engine's Evaluate appends exactly one Entry
// carrying the full verdict. Entries receive monotonically increasing ids
// starting at 1; an id is allocated atomically with its append and never
// reused. Past entries are never mutated.
//
// The log is in-memory for the process lifetime. Durable storage across
// restarts is deliberately out of scope; callers that need to keep or
// forward the trail use the export subpackage, and long-lived processes can
// bound memory with the retention subpackage. The log keeps running summary
// counters separate from the retained entries, so Summary totals reflect
// every evaluation ever made even after retention pruning.
package audit
