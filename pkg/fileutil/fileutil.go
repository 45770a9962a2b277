// =============================================================================
// HTML Table to CSV Converter - File Utilities
// =============================================================================
//
// This module provides the file-level plumbing for the converter:
//   - Input discovery (extension-filtered directory scan, sorted by name)
//   - Output naming (extension replacement, collision-free paths)
//   - Archival of processed inputs (move with copy fallback)
//
// ARCHIVAL STRATEGY:
//   - Inputs are moved to the archive directory only after their output is
//     written; failed files stay where they are.
//   - Name collisions in the archive get a numeric suffix (report_1.html)
//     so re-exports never overwrite an archived original.
//
// =============================================================================

// Package fileutil provides file discovery, naming, and archival helpers.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// DISCOVERY
// =============================================================================

// Discover lists the files in dir whose extension matches one of
// extensions, case-insensitively, sorted by name.
//
// PARAMETERS:
//   - dir: the directory to scan (not recursive).
//   - extensions: dot-prefixed extensions, e.g. [".html", ".htm"].
//
// RETURNS:
//   - The matching paths, joined with dir, in name order.
//   - An error if the directory cannot be read.
func Discover(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(ext)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range lowered {
			if ext == want {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// NAMING
// =============================================================================

// ReplaceExt swaps the extension of path for newExt (dot-prefixed).
// A path without an extension gets newExt appended.
func ReplaceExt(path, newExt string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + newExt
}

// UniquePath returns path if nothing exists there, otherwise the first
// name_1.ext, name_2.ext, ... variant that is free.
func UniquePath(path string) string {
	if !FileExists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !FileExists(candidate) {
			return candidate
		}
	}
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveFile moves the file at path into archiveDir, creating the
// directory if needed.
//
// PARAMETERS:
//   - path: the file to move.
//   - archiveDir: the destination directory.
//
// RETURNS:
//   - The path the file now lives at.
//   - An error if the move fails.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := UniquePath(filepath.Join(archiveDir, filepath.Base(path)))

	// Move the file.
	if err := os.Rename(path, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// copyFile copies src to dst, preserving contents but not metadata.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
