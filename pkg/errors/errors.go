// =============================================================================
// HTML Table to CSV Converter - Error Types
// =============================================================================
//
// This module defines the error taxonomy shared by the loader, the converter,
// and the merge engine. Errors fall into two groups:
//
//   RECOVERABLE (per-file, batch runs skip the file and continue):
//     - ErrNoTable: the input contains nothing tabular.
//
//   FATAL (the run stops with a non-zero exit):
//     - MissingColumnError: a required key column is absent after merging.
//     - ErrNoDateColumn: no column header contains "date".
//     - ErrNoTables: every input failed to load, nothing to merge.
//
// All types support errors.Is / errors.As so callers can branch on category
// without string matching.
//
// =============================================================================

// Package errors provides the error types used across the converter.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrNoTable indicates that an input file contains no parseable table.
	// Batch runs treat this as a per-file skip, not a failure.
	ErrNoTable = errors.New("no table found")

	// ErrNoDateColumn indicates that no column header contains "date".
	ErrNoDateColumn = errors.New("no column header containing 'date' found")

	// ErrNoTables indicates that no input produced a loadable table,
	// so there is nothing to merge.
	ErrNoTables = errors.New("no valid tables to merge")

	// ErrMissingColumn is the category sentinel for MissingColumnError.
	ErrMissingColumn = errors.New("required column not found")
)

// =============================================================================
// TYPED ERRORS
// =============================================================================

// MissingColumnError reports a required key column that is absent from the
// merged column set.
type MissingColumnError struct {
	Column string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("'%s' column not found", e.Column)
}

// Is implements errors.Is support.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError.
func NewMissingColumnError(column string) *MissingColumnError {
	return &MissingColumnError{Column: column}
}

// LoadError wraps a failure to load one input file, preserving the file name
// for console notices and the underlying cause for errors.Is checks.
type LoadError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// WrapLoad wraps err as a LoadError for the given file. A nil err returns nil.
func WrapLoad(file string, err error) error {
	if err == nil {
		return nil
	}
	return &LoadError{File: file, Err: err}
}
