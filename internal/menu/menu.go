// Package menu runs the interactive work log session.
//
// Menus are plain values: an ordered list of keys, labels and commands.
// The Loop is handed the menus it shows and dispatches on the Command a key
// maps to, so nothing here depends on package-level tables.
package menu

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/worklog/internal/tui"
)

// Command is an action selectable from a menu.
type Command int

const (
	// Add logs a new task.
	Add Command = iota + 1
	// Search opens the search menu.
	Search
	// Quit ends the session.
	Quit
	// SearchPattern finds tasks whose description or notes match a regex.
	SearchPattern
	// SearchDate finds tasks by one date or a range of dates.
	SearchDate
	// SearchExact finds tasks whose description or notes equal a text.
	SearchExact
	// SearchMinutes finds tasks by time spent or a range of it.
	SearchMinutes
	// BackToMain leaves the search menu.
	BackToMain
)

// String returns a string representation of the command.
func (c Command) String() string {
	switch c {
	case Add:
		return "add"
	case Search:
		return "search"
	case Quit:
		return "quit"
	case SearchPattern:
		return "search_pattern"
	case SearchDate:
		return "search_date"
	case SearchExact:
		return "search_exact"
	case SearchMinutes:
		return "search_minutes"
	case BackToMain:
		return "back"
	default:
		return "unknown"
	}
}

// Item is one line of a menu.
type Item struct {
	Key     string
	Label   string
	Command Command
}

// Menu is a titled, ordered list of items.
type Menu struct {
	Title string
	Items []Item
}

// Lookup returns the command bound to key.
func (m Menu) Lookup(key string) (Command, bool) {
	for _, item := range m.Items {
		if item.Key == key {
			return item.Command, true
		}
	}
	return 0, false
}

// Render writes the title and one "[key] Label" line per item.
func (m Menu) Render(w io.Writer) {
	styles := tui.NewMenuStyles()
	caser := cases.Title(language.English)

	_, _ = fmt.Fprintln(w, styles.Title.Render(m.Title))
	for _, item := range m.Items {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Key.Render("["+item.Key+"]"), caser.String(item.Label))
	}
}

// MainMenu returns the top-level menu.
func MainMenu() Menu {
	return Menu{
		Title: "Work Log",
		Items: []Item{
			{Key: "a", Label: "add entry", Command: Add},
			{Key: "f", Label: "search entries", Command: Search},
			{Key: "q", Label: "quit", Command: Quit},
		},
	}
}

// SearchMenu returns the search submenu.
func SearchMenu() Menu {
	return Menu{
		Title: "Search Entries",
		Items: []Item{
			{Key: "p", Label: "pattern", Command: SearchPattern},
			{Key: "d", Label: "date", Command: SearchDate},
			{Key: "x", Label: "exact search", Command: SearchExact},
			{Key: "t", Label: "time spent", Command: SearchMinutes},
			{Key: "m", Label: "back to main menu", Command: BackToMain},
			{Key: "q", Label: "quit", Command: Quit},
		},
	}
}
