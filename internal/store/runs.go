package store

import (
	"encoding/json"
	"time"

	"go-content-export/internal/model"
)

// SaveRun stores a new export run with its submitted spec.
func SaveRun(runID string, spec model.ExportJobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates the run status.
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records a fatal (run-level) error.
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// GetRunErrors returns the recorded error messages for a run.
func GetRunErrors(runID string) ([]string, error) {
	rows, err := db.Query(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		errors = append(errors, msg)
	}
	return errors, rows.Err()
}

// ListRuns returns all runs with basic info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches the full spec and status of one run.
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	spec := model.DefaultExportSpec()
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// SaveUserOutcome upserts the outcome row for one user in a run.
func SaveUserOutcome(runID string, outcome model.UserOutcome) error {
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO user_outcomes (run_id, username, status, item_count, asset_count, archive_path, error_message, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, username) DO UPDATE SET
			status = excluded.status,
			item_count = excluded.item_count,
			asset_count = excluded.asset_count,
			archive_path = excluded.archive_path,
			error_message = excluded.error_message,
			updated_at = excluded.updated_at`,
		runID, outcome.Username, outcome.Status, outcome.ItemCount, outcome.AssetCount,
		outcome.ArchivePath, outcome.Error, now)
	return err
}

// GetUserOutcomes returns the per-user outcomes for a run.
func GetUserOutcomes(runID string) ([]model.UserOutcome, error) {
	rows, err := db.Query(`
		SELECT username, status, item_count, asset_count, archive_path, error_message
		FROM user_outcomes WHERE run_id = ? ORDER BY username`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []model.UserOutcome
	for rows.Next() {
		var o model.UserOutcome
		if err := rows.Scan(&o.Username, &o.Status, &o.ItemCount, &o.AssetCount, &o.ArchivePath, &o.Error); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
