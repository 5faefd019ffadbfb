package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"go-content-export/internal/model"
)

// assetPattern matches embedded asset references: the fixed host
// prefix, a filename-safe token, and an extension. The strict variant
// also requires the -<digits> suffix the upload pipeline appends and a
// lowercase extension; near-misses are ignored, not errors.
func assetPattern(host string, strict bool) *regexp.Regexp {
	if strict {
		return regexp.MustCompile(regexp.QuoteMeta(host) + `[a-zA-Z0-9_-]+-[0-9]+\.[a-z]+`)
	}
	return regexp.MustCompile(regexp.QuoteMeta(host) + `[a-zA-Z0-9_-]+\.[a-zA-Z]+`)
}

// ExtractAssetRefs scans the item and explanation documents of the
// collected items for asset references and returns the referenced
// filenames (host prefix stripped), deduplicated in first-seen order.
// Scanning happens on the in-memory docs, so the match is independent
// of whatever escaping the items serializer applies.
func ExtractAssetRefs(items []model.Item, host string, strict bool) []string {
	pattern := assetPattern(host, strict)

	seen := make(map[string]bool)
	var refs []string
	for _, it := range items {
		for _, doc := range []string{it.ItemDoc, it.ExplanationDoc} {
			for _, url := range pattern.FindAllString(doc, -1) {
				name := url[len(host):]
				if !seen[name] {
					seen[name] = true
					refs = append(refs, name)
				}
			}
		}
	}
	return refs
}

// CopyAssets copies the referenced files from srcDir into destDir,
// creating destDir on demand. Each copy is independent: a missing or
// unreadable source file is logged and skipped so one bad asset never
// sinks the rest of the bundle. Returns the number of files copied.
func CopyAssets(refs []string, srcDir, destDir string) (int, error) {
	if len(refs) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("create asset dir: %w", err)
	}

	copied := 0
	for _, name := range refs {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			fmt.Printf("⚠️ Asset copy failed for %s: %v\n", name, err)
			continue
		}
		copied++
	}
	return copied, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
