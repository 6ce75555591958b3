// Package store provides the CSV-backed work log.
//
// The work log is a flat file with one task per row and the columns
// date, description, minutes, notes (no header). Appends add a row at the end;
// edits and deletes rewrite the whole file atomically. Every operation opens
// and closes the file within the call and holds an advisory lock on a sidecar
// file only while it runs. The sidecar "<log>.lock" is left in place
// afterwards; removing it would let a waiting process lock an unlinked file.
package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/worklog/internal/constants"
	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/flock"
	"github.com/mrz1836/worklog/internal/worklog"
)

// filePerm is the permission for a newly created work log. The file is
// shared by a team, so it stays group/world readable.
const filePerm = 0o644

// Store defines the work log operations used by the menu and the CLI.
type Store interface {
	// ReadAll returns every task in file order. A malformed row fails the
	// whole read with ErrMalformedRow.
	ReadAll(ctx context.Context) ([]worklog.Task, error)

	// Append writes task as a new last row and returns it with its row ID.
	Append(ctx context.Context, task worklog.Task) (worklog.Task, error)

	// Rewrite replaces the whole file with tasks, in slice order.
	Rewrite(ctx context.Context, tasks []worklog.Task) error

	// Delete removes the row addressed by target.ID after checking it still
	// holds target.
	Delete(ctx context.Context, target worklog.Task) error

	// Replace removes the row addressed by target.ID and appends replacement
	// as the new last row. Returns replacement with its new row ID.
	Replace(ctx context.Context, target, replacement worklog.Task) (worklog.Task, error)
}

// FileStore implements Store on a CSV file.
type FileStore struct {
	path        string
	lockTimeout time.Duration
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLockTimeout sets how long an operation waits for the work log lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *FileStore) {
		s.lockTimeout = d
	}
}

// NewFileStore creates a FileStore for the CSV file at path.
// If path is empty, work_log.csv in the current directory is used.
// The file itself is created lazily by the first Append or Rewrite.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		path = constants.WorkLogFileName
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve work log path: %w", err)
	}

	s := &FileStore{
		path:        absPath,
		lockTimeout: constants.DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the absolute path of the work log file.
func (s *FileStore) Path() string {
	return s.path
}

// ReadAll returns every task in file order, IDs set to their row numbers.
// Reads share the lock with each other and work in a read-only directory.
func (s *FileStore) ReadAll(ctx context.Context) ([]worklog.Task, error) {
	lock, err := s.readLock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	return s.readAll(ctx)
}

// Append writes task as a new last row. Existing rows are not rewritten,
// but they are parsed to number the new row.
func (s *FileStore) Append(ctx context.Context, task worklog.Task) (worklog.Task, error) {
	if err := task.Validate(); err != nil {
		return worklog.Task{}, fmt.Errorf("failed to append task: %w", err)
	}

	lock, err := s.lock(ctx)
	if err != nil {
		return worklog.Task{}, err
	}
	defer func() { _ = lock.Release() }()

	existing, err := s.readAll(ctx)
	if err != nil {
		return worklog.Task{}, err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, filePerm) //#nosec G304 -- configured work log path
	if err != nil {
		return worklog.Task{}, fmt.Errorf("failed to open work log: %w", err)
	}

	writeErr := func() error {
		if err := ensureTrailingNewline(f); err != nil {
			return err
		}
		w := csv.NewWriter(f)
		if err := w.Write(encodeTask(task)); err != nil {
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		return f.Sync()
	}()
	closeErr := f.Close()
	if writeErr != nil {
		return worklog.Task{}, fmt.Errorf("failed to append task: %w", writeErr)
	}
	if closeErr != nil {
		return worklog.Task{}, fmt.Errorf("failed to close work log: %w", closeErr)
	}

	task.ID = len(existing) + 1
	zerolog.Ctx(ctx).Debug().
		Int("row", task.ID).
		Str("date", task.DateString()).
		Int("minutes", task.Minutes).
		Msg("task appended")
	return task, nil
}

// Rewrite replaces the file contents with tasks in slice order.
func (s *FileStore) Rewrite(ctx context.Context, tasks []worklog.Task) error {
	lock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	return s.rewrite(ctx, tasks)
}

// Delete removes the row addressed by target.ID.
func (s *FileStore) Delete(ctx context.Context, target worklog.Task) error {
	lock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	tasks, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	idx, err := locate(tasks, target)
	if err != nil {
		return err
	}

	remaining := append(tasks[:idx:idx], tasks[idx+1:]...)
	if err := s.rewrite(ctx, remaining); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int("row", target.ID).Msg("task deleted")
	return nil
}

// Replace removes the row addressed by target.ID and appends replacement at
// the end of the file, so an edited task moves to the last row.
func (s *FileStore) Replace(ctx context.Context, target, replacement worklog.Task) (worklog.Task, error) {
	if err := replacement.Validate(); err != nil {
		return worklog.Task{}, fmt.Errorf("failed to replace task: %w", err)
	}

	lock, err := s.lock(ctx)
	if err != nil {
		return worklog.Task{}, err
	}
	defer func() { _ = lock.Release() }()

	tasks, err := s.readAll(ctx)
	if err != nil {
		return worklog.Task{}, err
	}

	idx, err := locate(tasks, target)
	if err != nil {
		return worklog.Task{}, err
	}

	updated := append(tasks[:idx:idx], tasks[idx+1:]...)
	updated = append(updated, replacement)
	if err := s.rewrite(ctx, updated); err != nil {
		return worklog.Task{}, err
	}

	replacement.ID = len(updated)
	zerolog.Ctx(ctx).Info().
		Int("old_row", target.ID).
		Int("new_row", replacement.ID).
		Msg("task replaced")
	return replacement, nil
}

// locate returns the slice index of the row addressed by target.ID after
// checking the row still holds target.
func locate(tasks []worklog.Task, target worklog.Task) (int, error) {
	idx := target.ID - 1
	if target.ID <= 0 || idx >= len(tasks) {
		return 0, fmt.Errorf("row %d: %w", target.ID, wlerrors.ErrTaskNotFound)
	}
	if !tasks[idx].Equal(target) {
		return 0, fmt.Errorf("row %d: %w", target.ID, wlerrors.ErrTaskChanged)
	}
	return idx, nil
}

func (s *FileStore) lock(ctx context.Context) (*flock.Lock, error) {
	return flock.Acquire(ctx, s.path+constants.LockFileSuffix, s.lockTimeout)
}

func (s *FileStore) readLock(ctx context.Context) (*flock.Lock, error) {
	return flock.AcquireShared(ctx, s.path+constants.LockFileSuffix, s.lockTimeout)
}

// readAll parses the file. The caller holds the lock.
func (s *FileStore) readAll(ctx context.Context) ([]worklog.Task, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(s.path) //#nosec G304 -- configured work log path
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", s.path).Msg("work log does not exist yet")
			return []worklog.Task{}, nil
		}
		return nil, fmt.Errorf("failed to open work log: %w", err)
	}
	defer func() { _ = f.Close() }()

	tasks, err := decodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(tasks) == 0 {
		logger.Warn().Str("path", s.path).Msg("work log is empty")
	}
	return tasks, nil
}

// rewrite writes tasks atomically. The caller holds the lock.
func (s *FileStore) rewrite(ctx context.Context, tasks []worklog.Task) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for _, t := range tasks {
		if err := cw.Write(encodeTask(t)); err != nil {
			return fmt.Errorf("failed to encode task: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode work log: %w", err)
	}

	if err := atomicWrite(s.path, buf.Bytes()); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int("rows", len(tasks)).Str("path", s.path).Msg("work log rewritten")
	return nil
}

// decodeAll parses CSV rows into tasks, numbering them from 1.
func decodeAll(r io.Reader) ([]worklog.Task, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1 // column count is checked per row for a clearer error

	var tasks []worklog.Task
	for {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		row := len(tasks) + 1
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %w", row, wlerrors.ErrMalformedRow, err)
		}

		task, err := decodeTask(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("row %d (line %d): %w: %w", row, line, wlerrors.ErrMalformedRow, err)
		}
		task.ID = row
		tasks = append(tasks, task)
	}

	if tasks == nil {
		tasks = []worklog.Task{}
	}
	return tasks, nil
}

func decodeTask(record []string) (worklog.Task, error) {
	if len(record) != constants.WorkLogColumns {
		return worklog.Task{}, fmt.Errorf("%w: expected %d columns, got %d",
			wlerrors.ErrValueOutOfRange, constants.WorkLogColumns, len(record))
	}

	d, err := worklog.ParseDate(record[constants.ColumnDate])
	if err != nil {
		return worklog.Task{}, err
	}

	minutes, err := worklog.ParseMinutes(record[constants.ColumnMinutes])
	if err != nil {
		return worklog.Task{}, err
	}

	return worklog.Task{
		Date:        d,
		Description: record[constants.ColumnDescription],
		Minutes:     minutes,
		Notes:       record[constants.ColumnNotes],
	}, nil
}

func encodeTask(t worklog.Task) []string {
	record := make([]string, constants.WorkLogColumns)
	record[constants.ColumnDate] = t.DateString()
	record[constants.ColumnDescription] = t.Description
	record[constants.ColumnMinutes] = strconv.Itoa(t.Minutes)
	record[constants.ColumnNotes] = t.Notes
	return record
}

// ensureTrailingNewline terminates a hand-edited last row before a new row is
// appended after it. f must be open for reading and appending.
func ensureTrailingNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + constants.TempFileSuffix
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync to disk before rename
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
