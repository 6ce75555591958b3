package menu

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/worklog/internal/clock"
	"github.com/mrz1836/worklog/internal/tui"
	"github.com/mrz1836/worklog/internal/worklog"
)

// Prompts used when entering a task.
const (
	promptDate        = "Date of the task (dd/mm/yyyy, m for mm/dd/yyyy, y for yyyy/mm/dd, blank for today): "
	promptDescription = "Description: "
	promptMinutes     = "Time spent (minutes): "
	promptNotes       = "Notes (optional, finish with an empty line):"
)

// addEntry prompts for every field and appends the task.
func (l *Loop) addEntry(ctx context.Context) error {
	date, err := tui.Ask(l.p, promptDate, l.parseEntryDate)
	if err != nil {
		return err
	}
	description, err := tui.Ask(l.p, promptDescription, tui.NonEmpty)
	if err != nil {
		return err
	}
	minutes, err := tui.Ask(l.p, promptMinutes, worklog.ParseMinutes)
	if err != nil {
		return err
	}
	notes, err := l.p.Notes(promptNotes)
	if err != nil {
		return err
	}

	task, err := l.store.Append(ctx, worklog.Task{
		Date:        date,
		Description: description,
		Minutes:     minutes,
		Notes:       notes,
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Int("id", task.ID).
		Str("date", task.DateString()).
		Int("minutes", task.Minutes).
		Msg("entry added")
	l.p.Output().Success("Entry added.")
	return nil
}

// parseEntryDate accepts a blank answer as today.
func (l *Loop) parseEntryDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return clock.Today(l.clock), nil
	}
	return worklog.ParseDateInput(s)
}
