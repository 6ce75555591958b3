package tui

import (
	stderrors "errors"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
)

// ActionableError is an error message with a suggested next step.
type ActionableError struct {
	// Message is the user-facing description.
	Message string
	// Detail is the underlying error text when it adds information.
	Detail string
	// Suggestion tells the user what to do next. May be empty.
	Suggestion string
}

// NewActionableError builds the user-facing form of err.
func NewActionableError(err error) *ActionableError {
	msg, action := wlerrors.Actionable(err)
	e := &ActionableError{Message: msg, Suggestion: action}
	if detail := err.Error(); detail != msg {
		e.Detail = detail
	}
	return e
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	return e.Message
}

// ReportError prints err as an error line followed by its detail and
// suggestion, when present.
func ReportError(out Output, err error) {
	if err == nil {
		return
	}
	e := NewActionableError(err)
	out.Error(stderrors.New(e.Message))
	if e.Detail != "" {
		out.Info("  " + e.Detail)
	}
	if e.Suggestion != "" {
		out.Info("  ▸ " + e.Suggestion)
	}
}
