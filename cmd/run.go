// =============================================================================
// HTML Table to CSV Converter - Run Orchestration
// =============================================================================
//
// This file carries the body of the root command: input resolution, the
// two processing modes, and the console output.
//
// PROCESSING PIPELINE:
//   1. Load configuration (defaults when no --config is given)
//   2. Resolve inputs: the positional file, or every matching file in the
//      working directory sorted by name
//   3. Individual mode: convert files concurrently, print results in
//      input order, archive on success
//      Merge mode: load sequentially (first-seen order matters), merge,
//      write merged.csv, print the discrepancy report
//   4. Print the summary
//
// CONSOLE CONTRACT:
//   Product output ([OK]/[SKIP]/[MERGED] lines, the report) goes to
//   stdout. Diagnostics go to stderr via the logger. Exit code 0 covers
//   success and the nothing-to-do case; everything fatal exits 1.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khopkins218/html-table-csv/internal/config"
	"github.com/khopkins218/html-table-csv/internal/converter"
	"github.com/khopkins218/html-table-csv/internal/csvwriter"
	"github.com/khopkins218/html-table-csv/internal/loader"
	"github.com/khopkins218/html-table-csv/internal/reconcile"
	"github.com/khopkins218/html-table-csv/internal/table"
	"github.com/khopkins218/html-table-csv/pkg/errors"
	"github.com/khopkins218/html-table-csv/pkg/fileutil"
	"github.com/khopkins218/html-table-csv/pkg/logging"
)

// =============================================================================
// MAIN RUN FUNCTION
// =============================================================================

// run resolves the inputs and dispatches to the selected mode.
func run(args []string) error {
	startTime := time.Now()

	logging.Debug().
		Str("run_id", uuid.New().String()).
		Bool("merge_all", mergeAll).
		Bool("dry_run", dryRun).
		Msg("starting run")

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// The --report flag beats the config file.
	if reportFormat != "" {
		if reportFormat != "text" && reportFormat != "table" {
			return fmt.Errorf("invalid report format %q (valid: \"text\", \"table\")", reportFormat)
		}
		cfg.ReportFormat = reportFormat
	}

	// =========================================================================
	// STEP 2: RESOLVE INPUT FILES
	// =========================================================================
	// An explicit file must exist. Without one, every matching file in the
	// working directory is processed, sorted by name; finding none is a
	// clean no-op, not an error.

	explicit := len(args) == 1
	var files []string
	if explicit {
		path := args[0]
		if !fileutil.FileExists(path) {
			return fmt.Errorf("file not found: %s", path)
		}
		if !cfg.HasInputExtension(path) {
			fmt.Printf("Warning: %s does not have a recognized input extension, attempting anyway\n", path)
		}
		files = []string{path}
	} else {
		files, err = fileutil.Discover(".", cfg.InputExtensions)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No HTML files found in current directory")
			return nil
		}
	}

	// =========================================================================
	// STEP 3: DISPATCH
	// =========================================================================

	if mergeAll {
		return runMerge(cfg, files)
	}
	return runConvert(cfg, files, explicit, startTime)
}

// =============================================================================
// INDIVIDUAL MODE
// =============================================================================

// runConvert converts each file to its own CSV. Files are processed
// concurrently, but results print in input order so runs are comparable.
func runConvert(cfg *config.Config, files []string, explicit bool, startTime time.Time) error {
	conv := converter.New(cfg, dryRun)

	// Process each file concurrently, collecting results by position.
	var wg sync.WaitGroup
	results := make([]converter.Result, len(files))
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			results[i] = conv.Convert(file)
		}(i, file)
	}
	wg.Wait()

	okTag := "[OK]"
	if dryRun {
		okTag = "[DRY-RUN]"
	}

	var converted, skipped, failed, rowsWritten int
	for i, result := range results {
		switch {
		case result.Skipped:
			skipped++
			fmt.Printf("[SKIP] No tables found in %s\n", files[i])

		case result.Error != nil:
			failed++
			fmt.Printf("[FAIL] %s: %v\n", filepath.Base(files[i]), result.Error)

		default:
			converted++
			rowsWritten += result.Stats.Rows
			sortNote := "no date column"
			if result.Stats.DateColumn != "" {
				sortNote = fmt.Sprintf("sorted by '%s'", result.Stats.DateColumn)
			}
			fmt.Printf("%s %s → %s (%s)\n",
				okTag,
				filepath.Base(result.InputFile),
				filepath.Base(result.OutputFile),
				sortNote,
			)
			fmt.Printf("Rows: %d | Columns: %d\n", result.Stats.Rows, result.Stats.Columns)

			if archiveInputs && !dryRun {
				archiveInput(files[i], cfg.ArchiveDir)
			}
		}
	}

	// Batch runs end with the summary block.
	if !explicit {
		fmt.Println("\n=== Conversion Complete ===")
		fmt.Printf("Total files:     %d\n", len(files))
		fmt.Printf("Converted:       %d\n", converted)
		fmt.Printf("Skipped:         %d\n", skipped)
		fmt.Printf("Failed:          %d\n", failed)
		fmt.Printf("Rows written:    %d\n", rowsWritten)
		fmt.Printf("Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// =============================================================================
// MERGE MODE
// =============================================================================

// runMerge merges every loadable input into one CSV and prints the
// cross-file discrepancy report.
func runMerge(cfg *config.Config, files []string) error {
	// Load sequentially: merge semantics depend on first-seen order.
	ld := loader.New(cfg)
	var tables []*table.Table
	var loaded []string
	for _, file := range files {
		t, err := ld.Load(file)
		if err != nil {
			if errors.Is(err, errors.ErrNoTable) {
				fmt.Printf("[SKIP] No tables found in %s\n", file)
				continue
			}
			return err
		}
		tables = append(tables, t)
		loaded = append(loaded, file)
	}

	engine := reconcile.New(cfg)
	result, err := engine.Merge(tables)
	if err != nil {
		return err
	}

	if !dryRun {
		if err := csvwriter.WriteFile(cfg.MergedOutput, result.Table, csvwriter.DefaultOptions()); err != nil {
			return err
		}
	}

	mergedTag := "[MERGED]"
	if dryRun {
		mergedTag = "[DRY-RUN]"
	}
	fmt.Printf("%s %d unique transactions → %s\n", mergedTag, result.Stats.UniqueRows, cfg.MergedOutput)

	if err := result.Report.Print(os.Stdout, cfg.ReportFormat); err != nil {
		return err
	}

	if archiveInputs && !dryRun {
		for _, file := range loaded {
			archiveInput(file, cfg.ArchiveDir)
		}
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// archiveInput moves one processed input aside. Archival failures are
// logged, not fatal; the converted output already exists.
func archiveInput(file, archiveDir string) {
	archived, err := fileutil.ArchiveFile(file, archiveDir)
	if err != nil {
		logging.Warn().Str("file", file).Err(err).Msg("failed to archive input")
		return
	}
	logging.Debug().Str("file", file).Str("archived", archived).Msg("archived input")
}
