package menu

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/tui"
	"github.com/mrz1836/worklog/internal/worklog"
)

// actOn offers to delete the selected task and otherwise walks the edit flow.
func (l *Loop) actOn(ctx context.Context, task worklog.Task) error {
	del, err := l.p.Confirm("Delete this entry?", false)
	if err != nil {
		return err
	}
	if del {
		return l.deleteEntry(ctx, task)
	}
	return l.editEntry(ctx, task)
}

func (l *Loop) deleteEntry(ctx context.Context, task worklog.Task) error {
	sure, err := l.p.Confirm(fmt.Sprintf("Permanently delete %q from %s?", task.Description, task.DateString()), false)
	if err != nil {
		return err
	}
	if !sure {
		l.p.Output().Info("Entry kept.")
		return nil
	}

	if err := l.store.Delete(ctx, task); err != nil {
		return l.storeResult(err)
	}

	zerolog.Ctx(ctx).Debug().Int("id", task.ID).Msg("entry deleted")
	l.p.Output().Success("Entry deleted.")
	return nil
}

// editEntry asks field by field whether to change it. The edited task is
// moved to the end of the log; nothing is written when no field changed.
func (l *Loop) editEntry(ctx context.Context, task worklog.Task) error {
	edited := task

	change, err := l.p.Confirm(fmt.Sprintf("Change date (%s)?", task.DateString()), false)
	if err != nil {
		return err
	}
	if change {
		if edited.Date, err = tui.Ask(l.p, promptDate, l.parseEntryDate); err != nil {
			return err
		}
	}

	if change, err = l.p.Confirm(fmt.Sprintf("Change description (%s)?", task.Description), false); err != nil {
		return err
	}
	if change {
		if edited.Description, err = tui.Ask(l.p, promptDescription, tui.NonEmpty); err != nil {
			return err
		}
	}

	if change, err = l.p.Confirm(fmt.Sprintf("Change time spent (%d)?", task.Minutes), false); err != nil {
		return err
	}
	if change {
		if edited.Minutes, err = tui.Ask(l.p, promptMinutes, worklog.ParseMinutes); err != nil {
			return err
		}
	}

	if change, err = l.p.Confirm("Change notes?", false); err != nil {
		return err
	}
	if change {
		if edited.Notes, err = l.p.Notes(promptNotes); err != nil {
			return err
		}
	}

	if edited.Equal(task) {
		l.p.Output().Info("No changes made.")
		return nil
	}

	saved, err := l.store.Replace(ctx, task, edited)
	if err != nil {
		return l.storeResult(err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("old_id", task.ID).
		Int("id", saved.ID).
		Msg("entry edited")
	l.p.Output().Success("Entry updated.")
	return nil
}

// storeResult reports stale-entry errors and returns to the main menu;
// any other store error ends the operation.
func (l *Loop) storeResult(err error) error {
	if !recoverable(err) {
		return err
	}
	msg, action := wlerrors.Actionable(err)
	out := l.p.Output()
	out.Warning(msg)
	if action != "" {
		out.Info("  " + action)
	}
	return nil
}
