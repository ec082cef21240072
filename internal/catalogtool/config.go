// Package catalogtool implements the offline catalog tool: it generates
// synthetic catalogs, verifies catalog invariants and logs reports.
package catalogtool

import "time"

// Config holds configuration for one tool run.
type Config struct {
	CatalogPath string // Catalog file to load
	Generate    int    // Number of synthetic games to generate instead of loading
	Seed        int64  // Generator seed
	Output      string // File to write the catalog to; format by extension
	TopN        int    // Leaderboard size to report
	Similar     string // Slug or id to report neighbours for
	Attr        string // Dimension to report the explorer ranking for
	Strict      bool   // Load with strict catalog checks
	Verbose     bool   // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	Games      int
	Violations int
	Source     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
