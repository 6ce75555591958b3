package tui

import (
	"fmt"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/worklog"
)

// Browser navigation keys.
const (
	KeyNext     = "n"
	KeyPrevious = "p"
	KeyBack     = "b"
	KeySelect   = "s"
)

// Browser notices.
const (
	NoticeNotFound = "No entries found."
	NoticeLast     = "No more entries."
	NoticeFirst    = "This is the first entry."
)

// Cursor is a position within a result list. Moves are clamped at both ends.
type Cursor struct {
	index int
	size  int
}

// NewCursor returns a cursor at the first of size results.
func NewCursor(size int) *Cursor {
	return &Cursor{size: size}
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Next advances the cursor. It returns false, leaving the cursor at the last
// result, when there is nothing after it.
func (c *Cursor) Next() bool {
	if c.index >= c.size-1 {
		return false
	}
	c.index++
	return true
}

// Prev moves the cursor back. It returns false at the first result.
func (c *Cursor) Prev() bool {
	if c.index <= 0 {
		return false
	}
	c.index--
	return true
}

// Browser pages through search results one task at a time.
type Browser struct {
	p *Prompter
}

// NewBrowser creates a Browser using p for input and output.
func NewBrowser(p *Prompter) *Browser {
	return &Browser{p: p}
}

// Browse shows the first result and reads navigation keys until the user
// selects a task (returned with true) or goes back (false). Empty results print
// a not-found notice and return false without prompting.
func (b *Browser) Browse(results []worklog.Task) (worklog.Task, bool, error) {
	out := b.p.Output()
	if len(results) == 0 {
		out.Warning(NoticeNotFound)
		return worklog.Task{}, false, nil
	}

	cursor := NewCursor(len(results))
	b.show(results, cursor)

	for {
		key, err := b.readKey()
		if err != nil {
			return worklog.Task{}, false, err
		}

		switch key {
		case KeyNext:
			if !cursor.Next() {
				out.Warning(NoticeLast)
				continue
			}
			b.show(results, cursor)
		case KeyPrevious:
			if !cursor.Prev() {
				out.Warning(NoticeFirst)
				continue
			}
			b.show(results, cursor)
		case KeyBack:
			return worklog.Task{}, false, nil
		case KeySelect:
			return results[cursor.Index()], true, nil
		}
	}
}

// readKey reads one navigation key. The retry budget covers invalid keys in
// a row and starts over with every valid one.
func (b *Browser) readKey() (string, error) {
	var key string
	err := b.p.Retry(func() error {
		k, err := b.p.Key(navigationPrompt)
		if err != nil {
			return err
		}
		switch k {
		case KeyNext, KeyPrevious, KeyBack, KeySelect:
			key = k
			return nil
		default:
			return fmt.Errorf("%w: %q", wlerrors.ErrInvalidMenuChoice, k)
		}
	}, IsInputFatal)
	return key, err
}

const navigationPrompt = "[N]ext, [P]revious, [B]ack, [S]elect: "

func (b *Browser) show(results []worklog.Task, c *Cursor) {
	w := b.p.Writer()
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, NewMenuStyles().Title.Render(fmt.Sprintf("Entry %d of %d", c.Index()+1, len(results))))
	RenderTask(w, results[c.Index()])
	_, _ = fmt.Fprintln(w)
}
