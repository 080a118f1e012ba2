package git

import (
	"time"
)

// CommitInfo contains metadata about a Git commit. It is attached to
// evaluation contexts so verdicts record which rule-pack revision they
// were judged under.
type CommitInfo struct {
	SHA        string    `json:"sha"`
	Author     string    `json:"author"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
	Message    string    `json:"message"`
	Branch     string    `json:"branch"`
	Repository string    `json:"repository"`
}

// PullResult contains the result of a pull operation.
type PullResult struct {
	FromSHA      string
	ToSHA        string
	ChangedFiles []string
	HadChanges   bool
}

// SyncMetrics tracks syncer operation counts.
type SyncMetrics struct {
	PollCount         int64
	SuccessfulReloads int64
	FailedReloads     int64
	LastReloadTime    time.Time
	LastReloadDur     time.Duration
	SkippedPolls      int64 // Changes touching no rule files
}
