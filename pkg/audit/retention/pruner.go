package retention

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mercator-hq/minerva/pkg/audit"
	"mercator-hq/minerva/pkg/audit/export"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// MaxAge is how long entries are retained.
	// 0 means keep entries forever (no age-based pruning).
	MaxAge time.Duration

	// MaxEntries is the maximum number of entries to keep.
	// 0 means unlimited.
	MaxEntries int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string

	// ArchiveBeforeDelete enables archiving entries before deletion.
	ArchiveBeforeDelete bool

	// ArchivePath is the directory to store archived entries.
	ArchivePath string
}

// DefaultConfig returns the default retention configuration. Both limits
// are zero: nothing is pruned until a limit is set explicitly.
func DefaultConfig() *Config {
	return &Config{
		MaxAge:              0,
		MaxEntries:          0,
		PruneSchedule:       "0 3 * * *",
		ArchiveBeforeDelete: false,
		ArchivePath:         "data/archives/",
	}
}

// Pruner enforces retention limits on an audit log.
type Pruner struct {
	log       *audit.Log
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner for the given log.
func NewPruner(log *audit.Log, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	pruner := &Pruner{
		log:    log,
		config: config,
		logger: slog.Default().With("component", "audit.retention"),
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune removes audit entries older than MaxAge or exceeding MaxEntries.
//
// Pruning happens in two phases:
//  1. Age-based: remove entries appended before now minus MaxAge
//  2. Count-based: if more than MaxEntries remain, remove the oldest
//
// Both can run together. Returns the total number of entries removed.
// The log's summary counters are unaffected; see audit.Log.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	var totalRemoved int

	if p.config.MaxAge > 0 {
		cutoff := time.Now().Add(-p.config.MaxAge)

		if p.config.ArchiveBeforeDelete {
			victims := entriesBefore(p.log.Snapshot(), cutoff)
			if err := p.archive(ctx, victims, "age"); err != nil {
				return totalRemoved, fmt.Errorf("archive failed: %w", err)
			}
		}

		removed := p.log.PruneBefore(cutoff)
		totalRemoved += removed
		p.logger.Info("pruned audit entries by age",
			"removed_count", removed,
			"max_age", p.config.MaxAge,
		)
	}

	if p.config.MaxEntries > 0 {
		if p.config.ArchiveBeforeDelete {
			snapshot := p.log.Snapshot()
			if excess := len(snapshot) - p.config.MaxEntries; excess > 0 {
				if err := p.archive(ctx, snapshot[:excess], "count"); err != nil {
					return totalRemoved, fmt.Errorf("archive failed: %w", err)
				}
			}
		}

		removed := p.log.TrimToMax(p.config.MaxEntries)
		totalRemoved += removed
		p.logger.Info("pruned audit entries by count",
			"removed_count", removed,
			"max_entries", p.config.MaxEntries,
		)
	}

	if totalRemoved == 0 {
		p.logger.Debug("no audit entries pruned",
			"max_age", p.config.MaxAge,
			"max_entries", p.config.MaxEntries,
		)
	} else {
		p.logger.Info("audit pruning completed",
			"total_removed", totalRemoved,
			"retained", p.log.Len(),
		)
	}

	return totalRemoved, nil
}

// entriesBefore returns the leading entries with a timestamp before the
// cutoff. Entries are in append order, so the scan stops at the first
// survivor.
func entriesBefore(entries []*audit.Entry, cutoff time.Time) []*audit.Entry {
	idx := 0
	for idx < len(entries) && entries[idx].Timestamp.Before(cutoff) {
		idx++
	}
	return entries[:idx]
}

// archive exports entries to a JSON file under ArchivePath.
func (p *Pruner) archive(ctx context.Context, entries []*audit.Entry, reason string) error {
	if len(entries) == 0 {
		return nil
	}

	if err := os.MkdirAll(p.config.ArchivePath, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	archiveFile := filepath.Join(p.config.ArchivePath,
		fmt.Sprintf("audit-%s-%s.json", reason, time.Now().Format("2006-01-02-150405")))
	f, err := os.Create(archiveFile)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	exporter := export.NewJSONExporter(true)
	if err := exporter.Export(ctx, entries, f); err != nil {
		return fmt.Errorf("failed to export entries to archive: %w", err)
	}

	p.logger.Info("audit entries archived",
		"archive_file", archiveFile,
		"entry_count", len(entries),
	)

	return nil
}

// Start starts the automatic pruning scheduler.
// Call this when starting the application.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
// Call this during graceful shutdown.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
