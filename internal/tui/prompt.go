package tui

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/worklog/internal/constants"
	wlerrors "github.com/mrz1836/worklog/internal/errors"
)

// Prompter reads answers one line at a time.
//
// Invalid answers are re-prompted in a bounded loop: after maxRetries invalid
// answers in a row the prompt gives up with ErrMaxRetriesExceeded.
type Prompter struct {
	r          *bufio.Reader
	w          io.Writer
	out        Output
	maxRetries int
	ctx        context.Context //nolint:containedctx // reads must observe cancellation
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithMaxRetries sets how many invalid answers a prompt accepts.
func WithMaxRetries(n int) PrompterOption {
	return func(p *Prompter) {
		if n >= 0 {
			p.maxRetries = n
		}
	}
}

// WithContext makes pending reads return ctx.Err() once ctx is done. Every
// later read returns ctx.Err() without touching the input.
func WithContext(ctx context.Context) PrompterOption {
	return func(p *Prompter) {
		p.ctx = ctx
	}
}

// NewPrompter creates a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		r:          bufio.NewReader(r),
		w:          w,
		out:        NewTTYOutput(w),
		maxRetries: constants.DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Writer returns the writer prompts are printed to.
func (p *Prompter) Writer() io.Writer {
	return p.w
}

// Output returns the styled output sharing the prompt writer.
func (p *Prompter) Output() Output {
	return p.out
}

// MaxRetries returns the retry budget.
func (p *Prompter) MaxRetries() int {
	return p.maxRetries
}

// Line prints prompt and returns the next line without its line ending.
// A final line without a newline is returned as is; EOF with nothing read
// returns ErrInputClosed.
func (p *Prompter) Line(prompt string) (string, error) {
	if prompt != "" {
		_, _ = io.WriteString(p.w, prompt)
	}

	line, err := p.readLine()
	if err != nil {
		if p.ctx != nil && stderrors.Is(err, p.ctx.Err()) {
			return "", err
		}
		if !stderrors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", wlerrors.ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line, giving up when the prompter context is done.
func (p *Prompter) readLine() (string, error) {
	if p.ctx == nil {
		return p.r.ReadString('\n')
	}
	if err := p.ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

// Key reads a menu key: trimmed and lower-cased.
func (p *Prompter) Key(prompt string) (string, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Confirm asks a yes/no question. An empty answer returns def; "y" or "yes"
// returns true; anything else returns false.
func (p *Prompter) Confirm(prompt string, def bool) (bool, error) {
	hint := " [y/N] "
	if def {
		hint = " [Y/n] "
	}

	answer, err := p.Key(prompt + hint)
	if err != nil {
		return false, err
	}

	switch answer {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Notes reads free text until an empty line (or EOF after some text).
func (p *Prompter) Notes(prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprintln(p.w, prompt)
	}

	var lines []string
	for {
		line, err := p.Line("")
		if stderrors.Is(err, wlerrors.ErrInputClosed) && len(lines) > 0 {
			break
		}
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Retry runs attempt until it succeeds, printing each failure. Errors for
// which fatal returns true end the loop immediately, as does running out of
// the retry budget.
func (p *Prompter) Retry(attempt func() error, fatal func(error) bool) error {
	var lastErr error
	for i := 0; i <= p.maxRetries; i++ {
		err := attempt()
		if err == nil {
			return nil
		}
		if fatal != nil && fatal(err) {
			return err
		}
		lastErr = err
		p.out.Error(stderrors.New(wlerrors.UserMessage(err)))
		if detail := err.Error(); detail != wlerrors.UserMessage(err) {
			_, _ = fmt.Fprintln(p.w, "  "+detail)
		}
	}
	return fmt.Errorf("%w: %w", wlerrors.ErrMaxRetriesExceeded, lastErr)
}

// IsInputFatal reports errors that re-prompting cannot fix: closed input,
// an exhausted retry budget and cancellation.
func IsInputFatal(err error) bool {
	return stderrors.Is(err, wlerrors.ErrInputClosed) ||
		stderrors.Is(err, wlerrors.ErrMaxRetriesExceeded) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded)
}

// Ask prints prompt and parses the answer, re-prompting on parse errors.
func Ask[T any](p *Prompter, prompt string, parse func(string) (T, error)) (T, error) {
	var result T
	err := p.Retry(func() error {
		line, err := p.Line(prompt)
		if err != nil {
			return err
		}
		v, err := parse(line)
		if err != nil {
			return err
		}
		result = v
		return nil
	}, IsInputFatal)
	return result, err
}

// NonEmpty is a parse function accepting any answer with visible text.
func NonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", wlerrors.ErrEmptyValue
	}
	return s, nil
}
