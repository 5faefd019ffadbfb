package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// BundleLayout maps usernames to their staging directories and archive
// paths. Distinct users own distinct directories, which is what lets
// per-user pipelines run concurrently without locking.
type BundleLayout struct {
	StagingBase string
	ArchiveBase string
}

// NewBundleLayout creates a layout rooted at the given base dirs.
func NewBundleLayout(stagingBase, archiveBase string) *BundleLayout {
	return &BundleLayout{
		StagingBase: stagingBase,
		ArchiveBase: archiveBase,
	}
}

// EnsureBaseDirs creates both base directories if needed.
func (bl *BundleLayout) EnsureBaseDirs() error {
	for _, dir := range []string{bl.StagingBase, bl.ArchiveBase} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create base dir %s: %w", dir, err)
		}
	}
	return nil
}

// StagingDir returns the per-user staging directory.
func (bl *BundleLayout) StagingDir(username string) string {
	return filepath.Join(bl.StagingBase, username)
}

// AssetDir returns the asset subfolder inside a user's staging dir.
func (bl *BundleLayout) AssetDir(username string) string {
	return filepath.Join(bl.StagingDir(username), "images")
}

// ArchivePath returns the per-user archive path.
func (bl *BundleLayout) ArchivePath(username string) string {
	return filepath.Join(bl.ArchiveBase, username+".zip")
}

// PurgeStaging destroys and recreates a user's staging directory so
// every run starts from a clean slate. A stale directory from an
// aborted run must never mix with new output.
func (bl *BundleLayout) PurgeStaging(username string) (string, error) {
	dir := bl.StagingDir(username)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("purge staging dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}
