package git

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
)

// ReloadCallback is called when rule packs need reloading. It receives
// the full path to the rule-pack directory and should load and validate
// every rule file under it. A non-nil error triggers a rollback to the
// last known-good commit.
type ReloadCallback func(rulePath string) error

// Syncer polls a rule-pack repository for new commits and triggers
// reloads when rule files (.yaml, .yml) change. Reloads are debounced
// so rapid commit bursts produce a single reload, and a failed reload
// rolls the working tree back so the last-known-good rules stay active.
//
// Basic usage:
//
//	syncer := git.NewSyncer(repo, 30*time.Second, reloadFn)
//	if err := syncer.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer syncer.Stop()
type Syncer struct {
	repo          *Repository
	pollInterval  time.Duration
	stopCh        chan struct{}
	reloadFn      ReloadCallback
	lastCommitSHA string
	mu            sync.RWMutex
	running       bool
	debounceTimer *time.Timer
	debounceMu    sync.Mutex
	logger        *slog.Logger
	metrics       *SyncMetrics
}

// NewSyncer creates a syncer for the given repository. The reloadFn
// callback fires when rule files change.
func NewSyncer(repo *Repository, interval time.Duration, reloadFn ReloadCallback) *Syncer {
	return &Syncer{
		repo:         repo,
		pollInterval: interval,
		reloadFn:     reloadFn,
		stopCh:       make(chan struct{}),
		logger:       slog.Default().With("component", "ingest.git"),
		metrics:      &SyncMetrics{},
	}
}

// SetLogger sets a custom logger for the syncer.
func (s *Syncer) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// Start begins polling for changes in a background goroutine. The
// context cancels the poll loop. Returns an error if the syncer is
// already running or the initial commit cannot be read.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("syncer already running")
	}

	commit, err := s.repo.CurrentCommit()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to get initial commit: %w", err)
	}
	s.lastCommitSHA = commit.SHA
	s.running = true
	s.mu.Unlock()

	s.logger.Info("syncer started",
		"poll_interval", s.pollInterval,
		"initial_commit", shortSHA(s.lastCommitSHA))

	go s.pollLoop(ctx)

	return nil
}

// Stop gracefully stops the syncer. Returns an error if it is not
// running.
func (s *Syncer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("syncer not running")
	}

	s.logger.Info("stopping syncer")
	close(s.stopCh)
	s.running = false

	s.debounceMu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceMu.Unlock()

	return nil
}

// IsRunning returns true if the syncer is currently running.
func (s *Syncer) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Syncer) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("syncer stopped by context cancellation")
			return
		case <-s.stopCh:
			s.logger.Info("syncer stopped by Stop()")
			return
		case <-ticker.C:
			if err := s.checkForChanges(ctx); err != nil {
				s.logger.Error("error checking for changes", "error", err)
			}
		}
	}
}

// checkForChanges pulls the remote and schedules a reload if any rule
// files changed. Commits touching no rule files only advance the
// tracked SHA.
func (s *Syncer) checkForChanges(ctx context.Context) error {
	s.metrics.PollCount++

	result, err := s.repo.Pull(ctx)
	if err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}

	if !result.HadChanges {
		return nil
	}

	s.logger.Info("detected changes",
		"from_sha", shortSHA(result.FromSHA),
		"to_sha", shortSHA(result.ToSHA),
		"changed_files", len(result.ChangedFiles))

	if !hasRuleFileChanges(result.ChangedFiles) {
		s.metrics.SkippedPolls++
		s.logger.Info("no rule files changed, skipping reload",
			"changed_files", result.ChangedFiles)
		s.mu.Lock()
		s.lastCommitSHA = result.ToSHA
		s.mu.Unlock()
		return nil
	}

	s.debounceReload(ctx, result.ToSHA)

	return nil
}

func hasRuleFileChanges(files []string) bool {
	for _, file := range files {
		ext := filepath.Ext(file)
		if ext == ".yaml" || ext == ".yml" {
			return true
		}
	}
	return false
}

// debounceReload collapses changes arriving within 100ms into a single
// reload.
func (s *Syncer) debounceReload(ctx context.Context, newSHA string) {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	s.debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
		if err := s.performReload(ctx, newSHA); err != nil {
			s.logger.Error("reload failed", "error", err)
		}
	})
}

func (s *Syncer) performReload(ctx context.Context, newSHA string) error {
	start := time.Now()
	defer func() {
		s.metrics.LastReloadDur = time.Since(start)
		s.metrics.LastReloadTime = time.Now()
	}()

	s.logger.Info("reloading rule packs", "commit_sha", shortSHA(newSHA))

	// Snapshot the rollback target up front; checkForChanges may advance
	// lastCommitSHA under the lock while the reload runs.
	s.mu.RLock()
	prevSHA := s.lastCommitSHA
	s.mu.RUnlock()

	rulePath := s.repo.RulePath()

	if err := s.reloadFn(rulePath); err != nil {
		s.metrics.FailedReloads++
		s.logger.Error("rule-pack validation failed, attempting rollback",
			"error", err,
			"current_sha", shortSHA(newSHA),
			"rollback_to", shortSHA(prevSHA))

		if rollbackErr := s.rollbackToPrevious(ctx, prevSHA); rollbackErr != nil {
			s.logger.Error("rollback failed",
				"error", rollbackErr,
				"target_sha", shortSHA(prevSHA))
			return fmt.Errorf("validation failed and rollback failed: %w (rollback: %v)", err, rollbackErr)
		}

		s.logger.Info("rolled back to previous commit",
			"sha", shortSHA(prevSHA))
		return fmt.Errorf("rule-pack validation failed: %w", err)
	}

	s.mu.Lock()
	oldSHA := s.lastCommitSHA
	s.lastCommitSHA = newSHA
	s.mu.Unlock()

	s.metrics.SuccessfulReloads++
	s.logger.Info("reloaded rule packs",
		"from_sha", shortSHA(oldSHA),
		"to_sha", shortSHA(newSHA),
		"duration", s.metrics.LastReloadDur)

	return nil
}

// rollbackToPrevious reverts the clone to the last known-good commit
// and reloads rules from it.
func (s *Syncer) rollbackToPrevious(ctx context.Context, sha string) error {
	if err := s.repo.Rollback(ctx, sha); err != nil {
		return fmt.Errorf("failed to rollback repository: %w", err)
	}

	rulePath := s.repo.RulePath()
	if err := s.reloadFn(rulePath); err != nil {
		return fmt.Errorf("failed to reload rules after rollback: %w", err)
	}

	return nil
}

// ForceSync immediately checks for changes without waiting for the next
// poll tick. Used by CLI commands that want an on-demand sync.
func (s *Syncer) ForceSync(ctx context.Context) error {
	s.mu.RLock()
	if !s.running {
		s.mu.RUnlock()
		return fmt.Errorf("syncer not running")
	}
	s.mu.RUnlock()

	s.logger.Info("force checking for changes")
	return s.checkForChanges(ctx)
}

// LastCommitSHA returns the commit rules were last successfully loaded
// from.
func (s *Syncer) LastCommitSHA() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCommitSHA
}

// Metrics returns a copy of the current syncer metrics.
func (s *Syncer) Metrics() SyncMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.metrics
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
