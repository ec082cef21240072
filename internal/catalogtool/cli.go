package catalogtool

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/yogicgames/pkg/logger"
)

// SetupLogging initialises the process logger on w, at debug level when
// verbose is set.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWithOptions(w, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the catalog tool.
func ShowHelp() {
	os.Stdout.WriteString(`Yogic Games Catalog Tool
========================

Loads or generates a game catalog, verifies its invariants and prints
reports through the logger.

Usage:
  go run ./cmd/catalog-tool [options]

Options:
  -catalog string
        Catalog file to load (YAML or JSON)
  -generate int
        Generate a synthetic catalog of N games instead of loading one
  -seed int
        Generator seed (default 1)
  -output string
        Write the catalog to this file; .yaml, .yml or .json
  -top int
        Leaderboard size to report (default 5)
  -similar string
        Report the nearest games to this slug or id
  -attr string
        Report the ranking for one attribute, e.g. sattva
  -strict
        Reject catalogs with stored score mismatches or rank gaps
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Verify the bundled catalog
  go run ./cmd/catalog-tool -catalog data/catalog.yaml

  # Generate 200 games and save them
  go run ./cmd/catalog-tool -generate 200 -seed 42 -output /tmp/catalog.json

  # Explore one attribute with neighbours of a game
  go run ./cmd/catalog-tool -catalog data/catalog.yaml -attr rajas -similar stardew-valley
`)
}
