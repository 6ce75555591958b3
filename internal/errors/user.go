package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Work log file
	// ===================
	{
		err: ErrMalformedRow,
		info: ErrorInfo{
			Message: "The work log file contains a row that cannot be read.",
			Action:  "Fix or remove the reported row in the CSV file and try again.",
		},
	},
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "The selected entry is no longer in the work log.",
			Action:  "Search again to pick up the current contents of the file.",
		},
	},
	{
		err: ErrTaskChanged,
		info: ErrorInfo{
			Message: "The work log changed since the entry was selected.",
			Action:  "Search again and repeat the change on the fresh entry.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Could not lock the work log. Another worklog process may be using it.",
			Action:  "Wait for the other process to finish and try again.",
		},
	},

	// ===================
	// Input
	// ===================
	{
		err: ErrInvalidPattern,
		info: ErrorInfo{
			Message: "The search pattern is not a valid regular expression.",
			Action:  "Escape special characters such as ( [ * + ? or use exact search.",
		},
	},
	{
		err: ErrInvalidDate,
		info: ErrorInfo{
			Message: "Dates must be written as dd/mm/yyyy.",
			Action:  "Prefix with 'm' for mm/dd/yyyy or 'y' for yyyy/mm/dd.",
		},
	},
	{
		err: ErrInvalidMinutes,
		info: ErrorInfo{
			Message: "Time spent must be a whole number of minutes.",
			Action:  "",
		},
	},
	{
		err: ErrMaxRetriesExceeded,
		info: ErrorInfo{
			Message: "Too many invalid answers in a row.",
			Action:  "Start worklog again when ready.",
		},
	},
	{
		err: ErrInputClosed,
		info: ErrorInfo{
			Message: "Input ended before the prompt was answered.",
			Action:  "",
		},
	},
	{
		err: ErrInvalidMenuChoice,
		info: ErrorInfo{
			Message: "Sorry, not in menu.",
			Action:  "",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},
	{
		err: ErrValueOutOfRange,
		info: ErrorInfo{
			Message: "Value is outside the allowed range.",
			Action:  "",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure config.yaml exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "Invalid configuration.",
			Action:  "Run 'worklog config show' and check the reported value.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use --output text or --output json.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
