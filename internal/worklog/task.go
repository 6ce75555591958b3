// Package worklog defines the task record logged by the team and the date and
// minutes parsing rules shared by the store, the search filters and the prompts.
package worklog

import (
	"fmt"
	"strings"
	"time"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
)

// Task is one logged unit of work.
//
// Tasks are values: editing builds a replacement rather than mutating the
// stored record. ID is the 1-based row the task occupied in the work log when
// it was read or appended, and is zero for a task not yet stored. ID is never
// written to the file.
type Task struct {
	ID          int       `json:"id" yaml:"id"`
	Date        time.Time `json:"date" yaml:"date"`
	Description string    `json:"description" yaml:"description"`
	Minutes     int       `json:"minutes" yaml:"minutes"`
	Notes       string    `json:"notes" yaml:"notes"`
}

// Equal reports whether t and other hold the same persisted fields.
// ID is ignored.
func (t Task) Equal(other Task) bool {
	return t.Date.Equal(other.Date) &&
		t.Description == other.Description &&
		t.Minutes == other.Minutes &&
		t.Notes == other.Notes
}

// DateString returns the task date in the dd/mm/yyyy layout.
func (t Task) DateString() string {
	return FormatDate(t.Date)
}

// ValidateDescription checks the description is present.
func (t Task) ValidateDescription() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", wlerrors.ErrEmptyValue)
	}
	return nil
}

// ValidateMinutes checks the time spent is not negative.
func (t Task) ValidateMinutes() error {
	if t.Minutes < 0 {
		return fmt.Errorf("%w: %d", wlerrors.ErrInvalidMinutes, t.Minutes)
	}
	return nil
}

// Validate performs full validation of the task.
func (t Task) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", wlerrors.ErrInvalidDate)
	}
	if err := t.ValidateDescription(); err != nil {
		return err
	}
	return t.ValidateMinutes()
}

// NotesKey returns the notes with trailing newlines removed. Exact search
// compares against this form so multi-line notes typed with a final blank
// line still match.
func NotesKey(notes string) string {
	return strings.TrimRight(notes, "\r\n")
}
