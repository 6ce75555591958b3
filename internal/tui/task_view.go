package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrz1836/worklog/internal/worklog"
)

// taskLabelWidth aligns the values of RenderTask.
const taskLabelWidth = 13

// RenderTask writes one task as a labelled block. Continuation lines of
// multi-line notes are indented under the first.
func RenderTask(w io.Writer, t worklog.Task) {
	styles := NewMenuStyles()
	field := func(label, value string) {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Label.Render(padLabel(label)), value)
	}

	field("Date:", t.DateString())
	field("Description:", t.Description)
	field("Time spent:", minutesText(t.Minutes))

	notes := worklog.NotesKey(t.Notes)
	if notes == "" {
		field("Notes:", "-")
		return
	}
	indent := strings.Repeat(" ", taskLabelWidth+1)
	field("Notes:", strings.ReplaceAll(notes, "\n", "\n"+indent))
}

func padLabel(label string) string {
	if len(label) >= taskLabelWidth {
		return label
	}
	return label + strings.Repeat(" ", taskLabelWidth-len(label))
}

func minutesText(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return strconv.Itoa(n) + " minutes"
}

// TaskColumns are the columns used to list tasks in a table.
func TaskColumns() []TableColumn {
	return []TableColumn{
		{Name: "#", Width: 4, Align: AlignRight},
		{Name: "DATE", Width: 10},
		{Name: "MIN", Width: 5, Align: AlignRight},
		{Name: "DESCRIPTION", Width: 32},
		{Name: "NOTES", Width: 30},
	}
}

// WriteTaskTable lists tasks with one row each.
func WriteTaskTable(w io.Writer, tasks []worklog.Task) {
	table := NewTable(w, TaskColumns())
	table.WriteHeader()
	for _, t := range tasks {
		table.WriteRow(
			strconv.Itoa(t.ID),
			t.DateString(),
			strconv.Itoa(t.Minutes),
			t.Description,
			worklog.NotesKey(t.Notes),
		)
	}
}
