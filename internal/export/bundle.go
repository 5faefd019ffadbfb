package export

import (
	"archive/zip"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go-content-export/internal/model"
	"go-content-export/pkg/utils"
)

// Artifact filenames inside a user's staging directory.
const (
	itemsFile    = "items.json"
	metadataFile = "metadata.json"
)

// Assemble stages and compresses one user's export bundle:
//
//  1. purge and recreate the staging directory
//  2. write the items and metadata artifacts
//  3. resolve and copy referenced assets
//  4. zip the staging tree (contents at the archive root)
//
// The staging directory is left on disk as an audit trail. The archive
// is written to a temp file and renamed, so a partially written archive
// from a failed run never looks like valid output. On successful return
// the archive is fully flushed and closed.
func Assemble(user model.User, items []model.Item, spec model.ExportJobSpec) (model.UserOutcome, error) {
	outcome := model.UserOutcome{
		Username:  user.Username,
		Status:    model.StatusFailed,
		ItemCount: len(items),
	}

	layout := utils.NewBundleLayout(spec.StagingDir, spec.ArchiveDir)
	staging, err := layout.PurgeStaging(user.Username)
	if err != nil {
		return outcome, err
	}

	if err := writeJSON(filepath.Join(staging, itemsFile), items, false); err != nil {
		return outcome, fmt.Errorf("write items artifact: %w", err)
	}
	if err := writeJSON(filepath.Join(staging, metadataFile), redact(user, spec.RedactEmails), true); err != nil {
		return outcome, fmt.Errorf("write metadata artifact: %w", err)
	}

	refs := ExtractAssetRefs(items, spec.AssetHost, spec.StrictAssetPattern)
	copied, err := CopyAssets(refs, spec.AssetDir, layout.AssetDir(user.Username))
	if err != nil {
		return outcome, fmt.Errorf("copy assets: %w", err)
	}
	outcome.AssetCount = copied

	archivePath := layout.ArchivePath(user.Username)
	size, err := zipDirectory(staging, archivePath)
	if err != nil {
		return outcome, fmt.Errorf("assemble archive: %w", err)
	}

	outcome.Status = model.StatusSucceeded
	outcome.ArchivePath = archivePath
	outcome.ArchiveBytes = size
	return outcome, nil
}

// redact blanks contact identifiers when the policy says so. The keys
// stay in the artifact either way; only the values are blanked.
func redact(user model.User, redactEmails bool) model.User {
	if redactEmails {
		user.Email = ""
		user.GoogleEmail = ""
	}
	return user
}

func writeJSON(path string, v interface{}, indent bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return file.Close()
}

// zipDirectory compresses the immediate contents of dir into a zip at
// destPath using best compression. Non-recursive wrapper semantics:
// entry names are relative to dir, so the staging contents sit at the
// archive root rather than under a nested folder.
func zipDirectory(dir, destPath string) (int64, error) {
	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("create archive file: %w", err)
	}
	defer os.Remove(tmpPath) // no-op after the rename succeeds
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("close zip: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close archive file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("rename archive: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
