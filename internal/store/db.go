package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// Tables the bulk snapshot load must have created before an export run
// can start. The load itself happens outside this process.
var analyticalTables = []string{
	"user",
	"pool",
	"challenge",
	"item",
	"challenge_item",
	"item_revision",
	"item_tag",
	"item_tag_mapping",
}

// InitDB opens the SQLite database and creates the run-bookkeeping
// tables if they do not exist.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}

	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	outcomeTable := `
	CREATE TABLE IF NOT EXISTS user_outcomes (
		run_id TEXT,
		username TEXT,
		status TEXT,
		item_count INTEGER,
		asset_count INTEGER,
		archive_path TEXT,
		error_message TEXT,
		updated_at DATETIME,
		PRIMARY KEY (run_id, username)
	);
	`

	for _, stmt := range []string{runsTable, errorTable, outcomeTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// DB exposes the underlying handle for the export queries.
func DB() *sql.DB {
	return db
}

// VerifyAnalyticalTables checks that every table the export pipeline
// reads from exists. A missing table is a precondition failure: the
// snapshot load has not run, so no partial output should be attempted.
func VerifyAnalyticalTables() error {
	var missing []string
	for _, table := range analyticalTables {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			missing = append(missing, table)
			continue
		}
		if err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("analytical tables missing (snapshot load not run?): %s", strings.Join(missing, ", "))
	}
	return nil
}
