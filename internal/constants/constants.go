// Package constants provides centralized constant values used throughout worklog.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by worklog.
const (
	// WorkLogFileName is the default CSV file holding one task per row.
	WorkLogFileName = "work_log.csv"

	// LockFileSuffix is appended to the work log path to name its advisory lock file.
	LockFileSuffix = ".lock"

	// TempFileSuffix is appended to the work log path while a rewrite is in progress.
	TempFileSuffix = ".tmp"
)

// Directory names used by worklog for organizing data.
const (
	// WorklogHome is the hidden directory name where worklog keeps config and logs.
	WorklogHome = ".worklog"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// DateLayout is the on-disk and display layout for task dates (dd/mm/yyyy).
const DateLayout = "02/01/2006"

// Alternative input layouts, selected by a one-letter prefix on the date answer.
const (
	// MonthFirstPrefix marks a date typed as mm/dd/yyyy.
	MonthFirstPrefix = "m"
	// MonthFirstLayout is the layout used after the MonthFirstPrefix.
	MonthFirstLayout = "01/02/2006"

	// YearFirstPrefix marks a date typed as yyyy/mm/dd.
	YearFirstPrefix = "y"
	// YearFirstLayout is the layout used after the YearFirstPrefix.
	YearFirstLayout = "2006/01/02"
)

// Work log column positions. Rows carry exactly WorkLogColumns fields.
const (
	ColumnDate        = 0
	ColumnDescription = 1
	ColumnMinutes     = 2
	ColumnNotes       = 3
	WorkLogColumns    = 4
)

// Locking configuration for the work log file.
const (
	// DefaultLockTimeout is the maximum duration to wait for the work log lock.
	DefaultLockTimeout = 5 * time.Second

	// LockRetryInterval is the wait between non-blocking lock attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// Prompt defaults.
const (
	// DefaultMaxRetries is how many invalid answers a prompt accepts before giving up.
	DefaultMaxRetries = 5

	// MaxRetriesLimit is the upper bound accepted for the prompt retry budget.
	MaxRetriesLimit = 100

	// DefaultPatternTimeout bounds a single regular-expression match.
	DefaultPatternTimeout = 2 * time.Second
)
