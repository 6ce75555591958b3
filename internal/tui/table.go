package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled fixed-width table rendering. Widths are measured in
// terminal cells, so wide runes in descriptions do not break alignment.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(t.format(names)))
}

// WriteRow writes a data row to the table. Missing values render blank.
func (t *Table) WriteRow(values ...string) {
	_, _ = fmt.Fprintln(t.w, t.format(values))
}

func (t *Table) format(values []string) string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = fitCell(value, col)
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}

// fitCell flattens newlines, truncates to the column width and pads.
func fitCell(value string, col TableColumn) string {
	value = strings.ReplaceAll(value, "\n", " ⏎ ")
	if col.Width <= 0 {
		return value
	}
	value = Truncate(value, col.Width)
	if col.Align == AlignRight {
		return runewidth.FillLeft(value, col.Width)
	}
	return runewidth.FillRight(value, col.Width)
}

// Truncate shortens s to at most width cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 1 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
