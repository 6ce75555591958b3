package constants

// Log file names and rotation settings.
const (
	// CLILogFileName is the name of the CLI log file.
	// This file is located in ~/.worklog/logs/worklog.log
	CLILogFileName = "worklog.log"

	// LogMaxSizeMB is the size at which the CLI log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// ConfigFileName is the name of both the global and project config files.
	ConfigFileName = "config.yaml"

	// EnvPrefix is the environment variable prefix (WORKLOG_STORE_PATH, ...).
	EnvPrefix = "WORKLOG"

	// HomeEnv overrides the ~/.worklog directory.
	HomeEnv = "WORKLOG_HOME"
)
