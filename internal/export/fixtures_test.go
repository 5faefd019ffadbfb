package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go-content-export/internal/model"
	"go-content-export/internal/store"

	"github.com/stretchr/testify/require"
)

func dbExec(query string, args ...interface{}) (sql.Result, error) {
	return store.DB().Exec(query, args...)
}

// initTestDB points the store at a fresh temp database seeded with the
// analytical schema the snapshot load would normally create.
func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "export_test.db")))

	schema := []string{
		`CREATE TABLE user (id TEXT PRIMARY KEY, username TEXT, email TEXT, googleEmail TEXT)`,
		`CREATE TABLE pool (id TEXT PRIMARY KEY, ownerId TEXT, title TEXT)`,
		`CREATE TABLE challenge (id TEXT PRIMARY KEY, ownerId TEXT, title TEXT, renderType TEXT)`,
		`CREATE TABLE item (id TEXT PRIMARY KEY, poolId TEXT, createdAt TEXT)`,
		`CREATE TABLE challenge_item (id TEXT PRIMARY KEY, challengeId TEXT, itemRevisionId TEXT, createdAt TEXT)`,
		`CREATE TABLE item_revision (id TEXT PRIMARY KEY, title TEXT, itemDoc TEXT, explanationDoc TEXT, draftItemId TEXT)`,
		`CREATE TABLE item_tag (id TEXT PRIMARY KEY, normalizedName TEXT)`,
		`CREATE TABLE item_tag_mapping (itemRevisionId TEXT, itemTagId TEXT)`,
	}
	for _, stmt := range schema {
		_, err := store.DB().Exec(stmt)
		require.NoError(t, err)
	}
}

func seedUser(t *testing.T, id, username, email, googleEmail string) {
	t.Helper()
	_, err := store.DB().Exec(`INSERT INTO user (id, username, email, googleEmail) VALUES (?, ?, ?, ?)`,
		id, username, email, googleEmail)
	require.NoError(t, err)
}

// seedPoolItems creates a pool with n items. withRevisions also links a
// draft revision to every item so the collector can reach them.
func seedPoolItems(t *testing.T, ownerID, poolID, title string, n int, createdAt string, withRevisions bool) {
	t.Helper()
	_, err := store.DB().Exec(`INSERT INTO pool (id, ownerId, title) VALUES (?, ?, ?)`, poolID, ownerID, title)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		itemID := fmt.Sprintf("%s-item-%d", poolID, i)
		_, err := store.DB().Exec(`INSERT INTO item (id, poolId, createdAt) VALUES (?, ?, ?)`, itemID, poolID, createdAt)
		require.NoError(t, err)
		if withRevisions {
			seedRevision(t, fmt.Sprintf("%s-rev-%d", poolID, i), "Pool Item "+itemID, "pool item body", "", itemID)
		}
	}
}

// seedChallengeItems creates a challenge with n membership rows, each
// pointing at its own revision when withRevisions is set.
func seedChallengeItems(t *testing.T, ownerID, challengeID, title, renderType string, n int, createdAt string, withRevisions bool) {
	t.Helper()
	_, err := store.DB().Exec(`INSERT INTO challenge (id, ownerId, title, renderType) VALUES (?, ?, ?, ?)`,
		challengeID, ownerID, title, renderType)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		revID := fmt.Sprintf("%s-rev-%d", challengeID, i)
		if withRevisions {
			seedRevision(t, revID, "Challenge Item "+revID, "challenge item body", "", "")
		}
		_, err := store.DB().Exec(`INSERT INTO challenge_item (id, challengeId, itemRevisionId, createdAt) VALUES (?, ?, ?, ?)`,
			fmt.Sprintf("%s-ci-%d", challengeID, i), challengeID, revID, createdAt)
		require.NoError(t, err)
	}
}

func seedRevision(t *testing.T, id, title, itemDoc, explanationDoc, draftItemID string) {
	t.Helper()
	var draft interface{}
	if draftItemID != "" {
		draft = draftItemID
	}
	_, err := store.DB().Exec(`INSERT INTO item_revision (id, title, itemDoc, explanationDoc, draftItemId) VALUES (?, ?, ?, ?, ?)`,
		id, title, itemDoc, explanationDoc, draft)
	require.NoError(t, err)
}

func seedTag(t *testing.T, revID, tagID, name string) {
	t.Helper()
	_, err := store.DB().Exec(`INSERT INTO item_tag (id, normalizedName) VALUES (?, ?)`, tagID, name)
	require.NoError(t, err)
	_, err = store.DB().Exec(`INSERT INTO item_tag_mapping (itemRevisionId, itemTagId) VALUES (?, ?)`, revID, tagID)
	require.NoError(t, err)
}

// testSpec returns a spec pointing every directory at the test's temp
// space, with the source asset dir and both output base dirs created.
func testSpec(t *testing.T) model.ExportJobSpec {
	t.Helper()
	base := t.TempDir()
	spec := model.DefaultExportSpec()
	spec.AssetDir = filepath.Join(base, "images")
	spec.StagingDir = filepath.Join(base, "out", "unzipped")
	spec.ArchiveDir = filepath.Join(base, "out", "zipped")
	for _, dir := range []string{spec.AssetDir, spec.StagingDir, spec.ArchiveDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return spec
}
