package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/yogicgames/internal/catalogtool"
)

// Default configuration constants.
const (
	defaultSeed    = 1
	defaultTopN    = 5
	defaultTimeout = 10 * time.Minute
)

// Exit codes.
const (
	exitFailure   = 1
	exitViolation = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		catalogPath = flag.String("catalog", "", "Catalog file to load (YAML or JSON)")
		generate    = flag.Int("generate", 0, "Generate a synthetic catalog of N games instead of loading one")
		seed        = flag.Int64("seed", defaultSeed, "Generator seed")
		output      = flag.String("output", "", "Write the catalog to this file (.yaml, .yml or .json)")
		topN        = flag.Int("top", defaultTopN, "Leaderboard size to report")
		similar     = flag.String("similar", "", "Report the nearest games to this slug or id")
		attr        = flag.String("attr", "", "Report the ranking for one attribute")
		strict      = flag.Bool("strict", false, "Reject stored score mismatches and rank gaps")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		catalogtool.ShowHelp()
		return 0
	}

	if err := catalogtool.SetupLogging(os.Stderr, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	config := &catalogtool.Config{
		CatalogPath: *catalogPath,
		Generate:    *generate,
		Seed:        *seed,
		Output:      *output,
		TopN:        *topN,
		Similar:     *similar,
		Attr:        *attr,
		Strict:      *strict,
		Verbose:     *verbose,
	}

	if _, err := catalogtool.Run(ctx, config); err != nil {
		os.Stderr.WriteString("catalog-tool: " + err.Error() + "\n")
		if errors.Is(err, catalogtool.ErrVerification) {
			return exitViolation
		}
		return exitFailure
	}
	return 0
}
