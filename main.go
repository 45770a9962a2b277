// =============================================================================
// HTML Table to CSV Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the HTML Table to CSV Converter CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   tablecsv                - Convert every *.html/*.htm in the directory
//   tablecsv file.html      - Convert a single export
//   tablecsv --merge-all    - Merge all exports into merged.csv + report
//   tablecsv version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/khopkins218/html-table-csv/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
