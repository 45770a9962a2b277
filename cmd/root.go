// =============================================================================
// HTML Table to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Unlike multi-verb
// tools, the converter does its work directly on the root command:
//
//   tablecsv                   # convert every HTML export in the directory
//   tablecsv statement.html    # convert one file
//   tablecsv --merge-all       # merge everything into merged.csv
//
// COBRA CLI STRUCTURE:
//   rootCmd (tablecsv)
//   └── versionCmd (tablecsv version)
//
// The root command is responsible for:
//   1. Global flags (--config, --verbose, --quiet)
//   2. Mode flags (--merge-all, --dry-run, --archive, --report)
//   3. Setting up logging before any work starts
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khopkins218/html-table-csv/pkg/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// quiet restricts logging to errors when set to true.
var quiet bool

// mergeAll switches from individual conversion to merge mode.
var mergeAll bool

// dryRun runs the full pipeline without writing any file.
var dryRun bool

// archiveInputs moves successfully processed inputs to the archive
// directory.
var archiveInputs bool

// reportFormat overrides the configured discrepancy report format.
var reportFormat string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. It carries the conversion itself;
// the only subcommand is 'version'.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "tablecsv [file]",

	// Short is a short description shown in the 'help' output.
	Short: "HTML Table to CSV Converter - Extract and reconcile bank transaction exports",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `HTML Table to CSV Converter reads the first table of each HTML (or XLSX)
bank export and writes it out as CSV, sorted by its date column.

With --merge-all the inputs are merged into a single merged.csv instead:
columns are restricted to those common to every file, duplicate transactions
are dropped, and rows that share a transaction key but disagree elsewhere
are reported as cross-file discrepancies.

Key Features:
  - Day-first date handling with per-value fallback to "missing"
  - Header recovery for exports that demote the real header row
  - Type-aware comparisons (100 and 100.00 match; 5 and "5" do not)
  - Deterministic column order and report order across runs

Example Usage:
  tablecsv                        # Convert every *.html/*.htm in the directory
  tablecsv january.html           # Convert a single export
  tablecsv --merge-all            # Merge and reconcile all exports
  tablecsv --merge-all --report table --archive`,

	// At most one positional argument: the input file.
	Args: cobra.MaximumNArgs(1),

	// Errors are printed once by Execute; usage noise stays out of stderr.
	SilenceUsage:  true,
	SilenceErrors: true,

	// Logging has to be live before any command body runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, quiet)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and mode flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Optional YAML file overriding key columns, date
	// layouts, extensions, and output names.
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"",
		"Path to an optional YAML configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --quiet flag: Restricts logging to errors.
	rootCmd.PersistentFlags().BoolVarP(
		&quiet,
		"quiet",
		"q",
		false,
		"Only log errors",
	)

	// ==========================================================================
	// MODE FLAGS
	// ==========================================================================
	// Local flags are only available on the root command.

	// --merge-all flag: Merge every input into one CSV instead of
	// converting each file separately.
	rootCmd.Flags().BoolVar(
		&mergeAll,
		"merge-all",
		false,
		"Merge all inputs into one deduplicated merged.csv",
	)

	// --dry-run flag: Run everything, write nothing.
	rootCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the full pipeline without writing or archiving files",
	)

	// --archive flag: Move processed inputs to the archive directory.
	rootCmd.Flags().BoolVar(
		&archiveInputs,
		"archive",
		false,
		"Move successfully processed inputs to the archive directory",
	)

	// --report flag: Discrepancy report format.
	rootCmd.Flags().StringVar(
		&reportFormat,
		"report",
		"",
		"Discrepancy report format: text or table (default from config)",
	)
}
