package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/worklog/internal/config"
	"github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/menu"
	"github.com/mrz1836/worklog/internal/store"
	"github.com/mrz1836/worklog/internal/tui"
)

// loadConfig loads the layered configuration with the --file flag on top.
func loadConfig(ctx context.Context, flags *GlobalFlags) (*config.Config, error) {
	return config.LoadWithOverrides(ctx, &config.Config{
		Store: config.StoreConfig{Path: flags.File},
	})
}

// openStore opens the work log named by cfg.
func openStore(cfg *config.Config) (*store.FileStore, error) {
	return store.NewFileStore(cfg.Store.Path, store.WithLockTimeout(cfg.Store.LockTimeout))
}

// runSession runs the interactive menu on the command's stdin and stdout.
func runSession(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return reportError(tui.NewTTYOutput(out), err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return reportError(tui.NewTTYOutput(out), err)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("session_id", uuid.NewString()).
		Str("store", st.Path()).
		Logger()
	ctx = logger.WithContext(ctx)

	p := tui.NewPrompter(cmd.InOrStdin(), out,
		tui.WithMaxRetries(cfg.Prompt.MaxRetries),
		tui.WithContext(ctx),
	)
	loop := menu.NewLoop(st, p,
		menu.WithPatternTimeout(cfg.Search.PatternTimeout),
		menu.WithClearScreen(cfg.Prompt.ClearScreen && isTerminal(out)),
	)
	err = loop.Run(ctx)
	if stderrors.Is(err, errors.ErrMaxRetriesExceeded) {
		return errors.NewExitCode2Error(err)
	}
	return err
}

// reportError prints err with its suggested action and returns it.
func reportError(out tui.Output, err error) error {
	tui.ReportError(out, err)
	return err
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
