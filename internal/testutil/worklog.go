// Package testutil provides shared fixtures for worklog tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrz1836/worklog/internal/constants"
)

// SeedRow is a single well-formed work log row.
const SeedRow = "01/01/2020,\"write tests\",60,\"none\"\n"

// WriteWorkLog writes content to a fresh work log file in a temporary
// directory and returns its path. Empty content still creates the file.
func WriteWorkLog(tb testing.TB, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), constants.WorkLogFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		tb.Fatalf("write work log: %v", err)
	}
	return path
}

// ReadWorkLog returns the raw contents of the work log at path.
func ReadWorkLog(tb testing.TB, path string) string {
	tb.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test fixture path
	if err != nil {
		tb.Fatalf("read work log: %v", err)
	}
	return string(data)
}
