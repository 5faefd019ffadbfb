package model

import "time"

// Per-user pipeline states.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// UserOutcome is the result of one user's export pipeline.
type UserOutcome struct {
	Username     string `json:"username"`
	Status       string `json:"status"`
	ItemCount    int    `json:"item_count"`
	AssetCount   int    `json:"asset_count"`
	ArchivePath  string `json:"archive_path,omitempty"`
	ArchiveBytes int64  `json:"archive_bytes,omitempty"`
	Error        string `json:"error,omitempty"`
}

// RunSummary reports a completed export run. Per-user failures are
// recorded here and in the store; they do not fail the run itself.
type RunSummary struct {
	RunID       string        `json:"run_id"`
	RankedUsers int           `json:"ranked_users"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Outcomes    []UserOutcome `json:"outcomes"`
	Duration    time.Duration `json:"duration"`
}
