// Package search provides the work log filters.
//
// Every filter is a linear scan over tasks already read from the store.
// Results keep the input (file) order; there is no ranking and no index.
package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/dlclark/regexp2"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/worklog"
)

// Filter selects tasks.
type Filter func(worklog.Task) bool

// Apply returns the tasks accepted by f, preserving order.
func Apply(tasks []worklog.Task, f Filter) []worklog.Task {
	out := make([]worklog.Task, 0, len(tasks))
	for _, t := range tasks {
		if f(t) {
			out = append(out, t)
		}
	}
	return out
}

// Dates returns the distinct task dates in chronological order.
func Dates(tasks []worklog.Task) []time.Time {
	seen := make(map[string]struct{}, len(tasks))
	dates := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		key := t.DateString()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, t.Date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// ByDate returns tasks logged on d.
func ByDate(tasks []worklog.Task, d time.Time) []worklog.Task {
	return Apply(tasks, func(t worklog.Task) bool {
		return t.Date.Equal(d)
	})
}

// ByDateRange returns tasks dated within [first, last], both ends included.
// The bounds are not swapped: first after last yields no tasks.
func ByDateRange(tasks []worklog.Task, first, last time.Time) []worklog.Task {
	return Apply(tasks, func(t worklog.Task) bool {
		return !t.Date.Before(first) && !t.Date.After(last)
	})
}

// ByMinutes returns tasks with exactly n minutes spent.
func ByMinutes(tasks []worklog.Task, n int) []worklog.Task {
	return ByMinutesRange(tasks, n, n)
}

// ByMinutesRange returns tasks whose minutes fall within [lo, hi], both ends included.
func ByMinutesRange(tasks []worklog.Task, lo, hi int) []worklog.Task {
	return Apply(tasks, func(t worklog.Task) bool {
		return t.Minutes >= lo && t.Minutes <= hi
	})
}

// ByExact returns tasks whose description equals text, or whose notes equal
// text once trailing newlines are trimmed. Substrings do not match.
func ByExact(tasks []worklog.Task, text string) []worklog.Task {
	return Apply(tasks, func(t worklog.Task) bool {
		return t.Description == text || worklog.NotesKey(t.Notes) == text
	})
}

// Pattern is a compiled search pattern.
type Pattern struct {
	re *regexp2.Regexp
}

// CompilePattern compiles pattern with Perl/Python-style syntax (lookarounds
// and backreferences included). timeout bounds each match; zero means no limit.
func CompilePattern(pattern string, timeout time.Duration) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wlerrors.ErrInvalidPattern, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &Pattern{re: re}, nil
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.re.String()
}

// MatchString reports whether s contains a match anywhere.
func (p *Pattern) MatchString(s string) (bool, error) {
	ok, err := p.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("pattern %q: %w", p.re.String(), err)
	}
	return ok, nil
}

// ByPattern returns tasks whose description or notes contain a match for
// pattern. Invalid patterns and match timeouts are returned as errors.
func ByPattern(tasks []worklog.Task, pattern string, timeout time.Duration) ([]worklog.Task, error) {
	p, err := CompilePattern(pattern, timeout)
	if err != nil {
		return nil, err
	}

	out := make([]worklog.Task, 0, len(tasks))
	for _, t := range tasks {
		ok, err := p.MatchString(t.Description)
		if err != nil {
			return nil, err
		}
		if !ok {
			if ok, err = p.MatchString(t.Notes); err != nil {
				return nil, err
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}
