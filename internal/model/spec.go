package model

// ExportJobSpec is the configuration for one export run. Submitted as
// the body of POST /api/v1/exports or read from a JSON file by the
// batch binary.
type ExportJobSpec struct {
	MinItemCount       int    `json:"minItemCount"`       // rank users with strictly more items than this
	RecentCutoff       string `json:"recentCutoff"`       // YYYY-MM-DD; items created after this count as recent
	IncludeTags        bool   `json:"includeTags"`        // enrich items with normalized tag names
	StrictAssetPattern bool   `json:"strictAssetPattern"` // require the -<digits> suffix on asset filenames
	AssetHost          string `json:"assetHost"`          // fixed URL prefix of embedded asset references
	RedactEmails       bool   `json:"redactEmails"`       // blank contact identifiers in metadata.json
	AssetDir           string `json:"assetDir"`           // local directory holding source asset files
	StagingDir         string `json:"stagingDir"`         // per-user staging directories go here
	ArchiveDir         string `json:"archiveDir"`         // per-user zip archives go here
	Workers            int    `json:"workers"`            // size of the per-user worker pool
	JobTimeout         string `json:"jobTimeout"`         // e.g. "10m"
}

// DefaultExportSpec returns the spec defaults. Unmarshal a submitted
// spec over it so absent fields keep their defaults.
func DefaultExportSpec() ExportJobSpec {
	return ExportJobSpec{
		MinItemCount:       10,
		RecentCutoff:       "2023-10-01",
		IncludeTags:        true,
		StrictAssetPattern: true,
		AssetHost:          "https://public.itempooluserdata.com/",
		RedactEmails:       true,
		AssetDir:           "images",
		StagingDir:         "out/unzipped",
		ArchiveDir:         "out/zipped",
		Workers:            4,
		JobTimeout:         "10m",
	}
}
