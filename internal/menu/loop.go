package menu

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/worklog/internal/clock"
	"github.com/mrz1836/worklog/internal/constants"
	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/store"
	"github.com/mrz1836/worklog/internal/tui"
)

// choicePrompt is shown under every menu.
const choicePrompt = "Your choice:> "

// Loop is an interactive session over one work log.
type Loop struct {
	store          store.Store
	p              *tui.Prompter
	browser        *tui.Browser
	clock          clock.Clock
	main           Menu
	search         Menu
	patternTimeout time.Duration
	clearScreen    bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the source of "today" for entries logged without a date.
func WithClock(c clock.Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithMenus replaces the main and search menus.
func WithMenus(main, search Menu) Option {
	return func(l *Loop) {
		l.main = main
		l.search = search
	}
}

// WithPatternTimeout bounds a single regex match during pattern search.
func WithPatternTimeout(d time.Duration) Option {
	return func(l *Loop) {
		l.patternTimeout = d
	}
}

// WithClearScreen clears the terminal before each menu is shown.
func WithClearScreen(enabled bool) Option {
	return func(l *Loop) {
		l.clearScreen = enabled
	}
}

// NewLoop creates a session reading and writing s through p.
func NewLoop(s store.Store, p *tui.Prompter, opts ...Option) *Loop {
	l := &Loop{
		store:          s,
		p:              p,
		browser:        tui.NewBrowser(p),
		clock:          clock.RealClock{},
		main:           MainMenu(),
		search:         SearchMenu(),
		patternTimeout: constants.DefaultPatternTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run shows the main menu until the user quits, input ends or ctx is done.
// Quitting and closing input at a menu both return nil. Errors that end an
// operation (an unreadable work log, an invalid pattern, running out of
// retries) are reported to the user and returned.
func (l *Loop) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("session started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := l.choose(l.main)
		if stderrors.Is(err, wlerrors.ErrInputClosed) {
			logger.Debug().Msg("input closed at main menu")
			return nil
		}
		if err != nil {
			return l.fail(ctx, err)
		}
		logger.Debug().Stringer("command", cmd).Msg("main menu choice")

		switch cmd {
		case Add:
			err = l.addEntry(ctx)
		case Search:
			var quit bool
			quit, err = l.runSearchMenu(ctx)
			if err == nil && quit {
				return l.quit(ctx)
			}
		case Quit:
			return l.quit(ctx)
		default:
			err = fmt.Errorf("%w: %s", wlerrors.ErrInvalidMenuChoice, cmd)
		}

		if stderrors.Is(err, wlerrors.ErrInputClosed) {
			logger.Debug().Msg("input closed during operation")
			return nil
		}
		if err != nil {
			return l.fail(ctx, err)
		}
	}
}

// runSearchMenu shows the search menu once. It returns true when the user
// chose to quit.
func (l *Loop) runSearchMenu(ctx context.Context) (bool, error) {
	cmd, err := l.choose(l.search)
	if err != nil {
		return false, err
	}
	zerolog.Ctx(ctx).Debug().Stringer("command", cmd).Msg("search menu choice")

	switch cmd {
	case SearchPattern:
		return false, l.searchPattern(ctx)
	case SearchDate:
		return false, l.searchDate(ctx)
	case SearchExact:
		return false, l.searchExact(ctx)
	case SearchMinutes:
		return false, l.searchMinutes(ctx)
	case BackToMain:
		return false, nil
	case Quit:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", wlerrors.ErrInvalidMenuChoice, cmd)
	}
}

// choose renders m and reads keys until one is in the menu.
func (l *Loop) choose(m Menu) (Command, error) {
	w := l.p.Writer()
	if l.clearScreen {
		tui.ClearScreen(w)
	}
	m.Render(w)

	var cmd Command
	err := l.p.Retry(func() error {
		key, err := l.p.Key(choicePrompt)
		if err != nil {
			return err
		}
		c, ok := m.Lookup(key)
		if !ok {
			return fmt.Errorf("%w: %q", wlerrors.ErrInvalidMenuChoice, key)
		}
		cmd = c
		return nil
	}, tui.IsInputFatal)
	return cmd, err
}

func (l *Loop) quit(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Msg("session ended by user")
	return nil
}

// fail reports err with its suggested action and returns it. Cancellation
// is returned as is.
func (l *Loop) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && stderrors.Is(err, ctxErr) {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("session cancelled")
		return err
	}
	zerolog.Ctx(ctx).Debug().Err(err).Msg("operation failed")
	tui.ReportError(l.p.Output(), err)
	return err
}

// recoverable reports store errors that leave the session usable: the
// addressed entry moved or vanished, so a fresh search will find it again.
func recoverable(err error) bool {
	return stderrors.Is(err, wlerrors.ErrTaskChanged) || stderrors.Is(err, wlerrors.ErrTaskNotFound)
}
