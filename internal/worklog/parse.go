package worklog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/worklog/internal/constants"
	wlerrors "github.com/mrz1836/worklog/internal/errors"
)

// FormatDate renders d as dd/mm/yyyy.
func FormatDate(d time.Time) string {
	return d.Format(constants.DateLayout)
}

// ParseDate parses the canonical dd/mm/yyyy layout. Surrounding whitespace
// is ignored.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not dd/mm/yyyy", wlerrors.ErrInvalidDate, s)
	}
	return d, nil
}

// ParseDateInput parses a date typed at a prompt. Plain input is dd/mm/yyyy;
// a leading "m" switches to mm/dd/yyyy and a leading "y" to yyyy/mm/dd, e.g.
// "m 01/31/2020" or "y2020/01/31". The result is a plain calendar date, so
// FormatDate normalises it back to dd/mm/yyyy before storage.
func ParseDateInput(s string) (time.Time, error) {
	in := strings.TrimSpace(s)
	lower := strings.ToLower(in)

	layout := constants.DateLayout
	switch {
	case strings.HasPrefix(lower, constants.MonthFirstPrefix):
		layout = constants.MonthFirstLayout
		in = strings.TrimSpace(in[len(constants.MonthFirstPrefix):])
	case strings.HasPrefix(lower, constants.YearFirstPrefix):
		layout = constants.YearFirstLayout
		in = strings.TrimSpace(in[len(constants.YearFirstPrefix):])
	}

	d, err := time.Parse(layout, in)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", wlerrors.ErrInvalidDate, s, layoutHint(layout))
	}
	return d, nil
}

func layoutHint(layout string) string {
	switch layout {
	case constants.MonthFirstLayout:
		return "mm/dd/yyyy"
	case constants.YearFirstLayout:
		return "yyyy/mm/dd"
	default:
		return "dd/mm/yyyy"
	}
}

// ParseMinutes parses a non-negative whole number of minutes.
func ParseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", wlerrors.ErrInvalidMinutes, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", wlerrors.ErrInvalidMinutes, n)
	}
	return n, nil
}
