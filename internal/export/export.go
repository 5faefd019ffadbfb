package export

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go-content-export/internal/model"
	"go-content-export/internal/store"
	"go-content-export/pkg/utils"
)

// Run drives one export run: rank users once, then fan the per-user
// pipelines (collect → stage → assets → archive) out over a bounded
// worker pool. A failure before fan-out is fatal to the run; a failure
// inside one user's pipeline is recorded against that user and the
// rest proceed.
func Run(ctx context.Context, runID string, spec model.ExportJobSpec) (summary model.RunSummary, err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting export run: %s\n", runID)

	store.UpdateRunStatus(runID, "running")

	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, utils.ParseDuration(spec.JobTimeout))
	defer cancel()

	// Preconditions: the snapshot tables and the source asset dir must
	// exist before any per-user work is attempted.
	if err = store.VerifyAnalyticalTables(); err != nil {
		return summary, err
	}
	if _, statErr := os.Stat(spec.AssetDir); statErr != nil {
		err = fmt.Errorf("source asset dir %s: %w", spec.AssetDir, statErr)
		return summary, err
	}
	layout := utils.NewBundleLayout(spec.StagingDir, spec.ArchiveDir)
	if err = layout.EnsureBaseDirs(); err != nil {
		return summary, err
	}

	// --- RANKING (sequential, fatal on failure) ---
	users, err := RankUsers(ctx, spec)
	if err != nil {
		err = fmt.Errorf("rank users: %w", err)
		return summary, err
	}
	fmt.Printf("📊 Ranked %d users above threshold %d\n", len(users), spec.MinItemCount)

	// --- PER-USER FAN-OUT (bounded worker pool) ---
	workerCount := spec.Workers
	if workerCount == 0 {
		workerCount = 4 // default
	}

	jobs := make(chan model.User)
	outcomes := make(chan model.UserOutcome, len(users))

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(workerID int) {
			defer wg.Done()
			for user := range jobs {
				outcome := exportUser(ctx, user, spec)
				store.SaveUserOutcome(runID, outcome)
				outcomes <- outcome
			}
		}(i + 1)
	}

	go func() {
		defer close(jobs)
		for _, user := range users {
			select {
			case <-ctx.Done():
				return
			case jobs <- user:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	summary = model.RunSummary{RunID: runID, RankedUsers: len(users)}
	for outcome := range outcomes {
		if outcome.Status == model.StatusSucceeded {
			summary.Succeeded++
			fmt.Printf("✅ SUCCESS %s (%d items, %d assets, %d bytes)\n",
				outcome.Username, outcome.ItemCount, outcome.AssetCount, outcome.ArchiveBytes)
		} else {
			summary.Failed++
			fmt.Printf("❌ FAILED %s: %s\n", outcome.Username, outcome.Error)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	summary.Duration = time.Since(start)

	fmt.Printf("🏁 Export run %s finished in %v: %d succeeded, %d failed\n",
		runID, summary.Duration, summary.Succeeded, summary.Failed)

	store.UpdateRunStatus(runID, "completed")
	return summary, nil
}

// exportUser is one user's pipeline. Every error is captured in the
// outcome rather than propagated, which is what keeps sibling users
// isolated from each other.
func exportUser(ctx context.Context, user model.User, spec model.ExportJobSpec) model.UserOutcome {
	items, err := CollectItems(ctx, user.ID, spec.IncludeTags)
	if err != nil {
		return model.UserOutcome{
			Username: user.Username,
			Status:   model.StatusFailed,
			Error:    fmt.Sprintf("collect items: %v", err),
		}
	}

	outcome, err := Assemble(user, items, spec)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	return outcome
}
