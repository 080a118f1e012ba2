// Package retention bounds the in-memory audit trail.
//
// The audit log itself is append-only and unbounded; long-running
// deployments that evaluate constraints continuously need something to
// keep it from growing without limit. The pruner removes the oldest
// retained entries by age and by count, optionally archiving them to
// JSON files first. Entry ids and the log's running summary counters
// are never touched by pruning.
//
// # Configuration
//
// Retention is disabled by default: a zero MaxAge and a zero MaxEntries
// mean nothing is ever pruned. Enable one or both limits explicitly:
//
//	pruner := retention.NewPruner(log, &retention.Config{
//	    MaxAge:     30 * 24 * time.Hour,
//	    MaxEntries: 100000,
//	})
//	removed, err := pruner.Prune(ctx)
//
// # Scheduling
//
// For automatic pruning, set PruneSchedule to a cron expression and
// start the pruner:
//
//	pruner.Start(ctx) // prunes on schedule until ctx is cancelled
//	defer pruner.Stop()
//
// # Archiving
//
// With ArchiveBeforeDelete set, entries are exported to a JSON file
// under ArchivePath before they are removed. Archive failures abort the
// prune so no entry is lost silently.
package retention
