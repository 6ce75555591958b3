package menu

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/search"
	"github.com/mrz1836/worklog/internal/tui"
	"github.com/mrz1836/worklog/internal/worklog"
)

// searchDate lists the distinct dates in the log and searches one of them
// or, on request, a range between two of them.
func (l *Loop) searchDate(ctx context.Context) error {
	tasks, err := l.store.ReadAll(ctx)
	if err != nil {
		return err
	}

	dates := search.Dates(tasks)
	if len(dates) == 0 {
		return l.browse(ctx, nil)
	}

	w := l.p.Writer()
	for i, d := range dates {
		_, _ = fmt.Fprintf(w, "%3d: %s\n", i+1, worklog.FormatDate(d))
	}

	isRange, err := l.p.Confirm("Search a range of dates?", false)
	if err != nil {
		return err
	}

	pick := indexParser(len(dates))
	if !isRange {
		i, err := tui.Ask(l.p, "Number of the date: ", pick)
		if err != nil {
			return err
		}
		return l.browse(ctx, search.ByDate(tasks, dates[i]))
	}

	first, err := tui.Ask(l.p, "Number of the first date: ", pick)
	if err != nil {
		return err
	}
	last, err := tui.Ask(l.p, "Number of the last date: ", pick)
	if err != nil {
		return err
	}
	return l.browse(ctx, search.ByDateRange(tasks, dates[first], dates[last]))
}

// searchMinutes searches by time spent, exact or within a range.
func (l *Loop) searchMinutes(ctx context.Context) error {
	isRange, err := l.p.Confirm("Search a range of minutes?", false)
	if err != nil {
		return err
	}

	if !isRange {
		n, err := tui.Ask(l.p, promptMinutes, worklog.ParseMinutes)
		if err != nil {
			return err
		}
		tasks, err := l.store.ReadAll(ctx)
		if err != nil {
			return err
		}
		return l.browse(ctx, search.ByMinutes(tasks, n))
	}

	lo, err := tui.Ask(l.p, "Lowest time spent (minutes): ", worklog.ParseMinutes)
	if err != nil {
		return err
	}
	hi, err := tui.Ask(l.p, "Highest time spent (minutes): ", worklog.ParseMinutes)
	if err != nil {
		return err
	}
	tasks, err := l.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	return l.browse(ctx, search.ByMinutesRange(tasks, lo, hi))
}

// searchExact finds tasks whose description or notes equal the answer.
func (l *Loop) searchExact(ctx context.Context) error {
	text, err := tui.Ask(l.p, "Text to find: ", exactText)
	if err != nil {
		return err
	}
	tasks, err := l.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	return l.browse(ctx, search.ByExact(tasks, text))
}

// searchPattern finds tasks matching a regular expression. An invalid
// pattern ends the operation.
func (l *Loop) searchPattern(ctx context.Context) error {
	pattern, err := l.p.Line("Pattern: ")
	if err != nil {
		return err
	}
	tasks, err := l.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	results, err := search.ByPattern(tasks, pattern, l.patternTimeout)
	if err != nil {
		return err
	}
	return l.browse(ctx, results)
}

// exactText takes the answer verbatim, surrounding spaces included.
func exactText(s string) (string, error) {
	if s == "" {
		return "", wlerrors.ErrEmptyValue
	}
	return s, nil
}

// indexParser parses a 1-based list position into a 0-based index.
func indexParser(n int) func(string) (int, error) {
	return func(s string) (int, error) {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i < 1 || i > n {
			return 0, fmt.Errorf("%w: choose a number from 1 to %d", wlerrors.ErrValueOutOfRange, n)
		}
		return i - 1, nil
	}
}

// browse pages through results and acts on the selected task.
func (l *Loop) browse(ctx context.Context, results []worklog.Task) error {
	zerolog.Ctx(ctx).Debug().Int("results", len(results)).Msg("search finished")

	task, ok, err := l.browser.Browse(results)
	if err != nil || !ok {
		return err
	}
	return l.actOn(ctx, task)
}
