package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/worklog"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T, contents string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work_log.csv")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	}
	s, err := NewFileStore(path, WithLockTimeout(time.Second))
	require.NoError(t, err)
	return s
}

func readFile(t *testing.T, s *FileStore) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return string(data)
}

func TestNewFileStore(t *testing.T) {
	t.Parallel()

	t.Run("defaults to work_log.csv", func(t *testing.T) {
		s, err := NewFileStore("")
		require.NoError(t, err)
		assert.Equal(t, "work_log.csv", filepath.Base(s.Path()))
		assert.True(t, filepath.IsAbs(s.Path()))
	})

	t.Run("uses provided path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "team.csv")
		s, err := NewFileStore(path)
		require.NoError(t, err)
		assert.Equal(t, path, s.Path())
	})
}

func TestFileStore_ReadAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("parses rows in file order", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,\"write tests\",60,\"none\"\n02/01/2020,deploy,30,\n")

		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		assert.Equal(t, worklog.Task{ID: 1, Date: date(2020, 1, 1), Description: "write tests", Minutes: 60, Notes: "none"}, tasks[0])
		assert.Equal(t, worklog.Task{ID: 2, Date: date(2020, 1, 2), Description: "deploy", Minutes: 30}, tasks[1])
	})

	t.Run("multi-line notes inside quotes", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "03/02/2021,review,15,\"first line\nsecond line\"\n")

		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "first line\nsecond line", tasks[0].Notes)
	})

	t.Run("missing file warns and yields empty", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "")

		var logBuf bytes.Buffer
		lctx := zerolog.New(&logBuf).WithContext(ctx)

		tasks, err := s.ReadAll(lctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.NotNil(t, tasks)
		assert.Contains(t, logBuf.String(), "does not exist")
	})

	t.Run("empty file warns and yields empty", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "")
		require.NoError(t, os.WriteFile(s.Path(), nil, 0o600))

		var logBuf bytes.Buffer
		lctx := zerolog.New(&logBuf).WithContext(ctx)

		tasks, err := s.ReadAll(lctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.Contains(t, logBuf.String(), "work log is empty")
		assert.Contains(t, logBuf.String(), `"level":"warn"`)
	})

	malformed := []struct {
		name     string
		contents string
		cause    error
	}{
		{"short row", "01/01/2020,a,60,x\n01/01/2020,b,60\n", wlerrors.ErrValueOutOfRange},
		{"long row", "01/01/2020,a,60,x,extra\n", wlerrors.ErrValueOutOfRange},
		{"non numeric minutes", "01/01/2020,a,sixty,x\n", wlerrors.ErrInvalidMinutes},
		{"bad date", "2020-01-01,a,60,x\n", wlerrors.ErrInvalidDate},
	}
	for _, tc := range malformed {
		t.Run("fails whole read on "+tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t, tc.contents)

			tasks, err := s.ReadAll(ctx)
			require.ErrorIs(t, err, wlerrors.ErrMalformedRow)
			require.ErrorIs(t, err, tc.cause)
			assert.Nil(t, tasks)
		})
	}

	t.Run("reports the failing row", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,a,60,x\n01/01/2020,b,60,y\n01/01/2020,c,oops,z\n")

		_, err := s.ReadAll(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
	})
}

func TestFileStore_Append(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip returns the task as last element", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,\"write tests\",60,\"none\"\n")
		task := worklog.Task{Date: date(2020, 1, 2), Description: "deploy, then verify", Minutes: 30, Notes: "line one\nline \"two\""}

		stored, err := s.Append(ctx, task)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.ID)

		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.True(t, tasks[1].Equal(task))
		assert.Equal(t, stored, tasks[1])
	})

	t.Run("creates file and never touches existing rows", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "")

		_, err := s.Append(ctx, worklog.Task{Date: date(2020, 1, 1), Description: "first", Minutes: 1})
		require.NoError(t, err)
		before := readFile(t, s)

		_, err = s.Append(ctx, worklog.Task{Date: date(2020, 1, 2), Description: "second", Minutes: 2})
		require.NoError(t, err)
		after := readFile(t, s)

		assert.True(t, strings.HasPrefix(after, before))
		assert.Equal(t, "01/01/2020,first,1,\n02/01/2020,second,2,\n", after)
	})

	t.Run("terminates a hand-edited last row", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,a,60,x")

		_, err := s.Append(ctx, worklog.Task{Date: date(2020, 1, 2), Description: "b", Minutes: 5})
		require.NoError(t, err)

		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "b", tasks[1].Description)
	})

	t.Run("rejects invalid task", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "")

		_, err := s.Append(ctx, worklog.Task{Date: date(2020, 1, 2), Minutes: 5})
		require.ErrorIs(t, err, wlerrors.ErrEmptyValue)
	})

	t.Run("refuses to append after a malformed log", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "garbage\n")

		_, err := s.Append(ctx, worklog.Task{Date: date(2020, 1, 2), Description: "b", Minutes: 5})
		require.ErrorIs(t, err, wlerrors.ErrMalformedRow)
		assert.Equal(t, "garbage\n", readFile(t, s))
	})
}

func TestFileStore_Rewrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rewrite of read_all keeps parsed content", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,\"write tests\",60,\"none\"\n05/03/2021,notes,10,\"a\nb\"\n")

		before, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.NoError(t, s.Rewrite(ctx, before))

		after, err := s.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		_, statErr := os.Stat(s.Path() + ".tmp")
		assert.True(t, os.IsNotExist(statErr), "temp file should be renamed away")
	})

	t.Run("order follows the slice", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "")
		a := worklog.Task{Date: date(2020, 1, 1), Description: "a", Minutes: 1}
		b := worklog.Task{Date: date(2020, 1, 2), Description: "b", Minutes: 2}

		require.NoError(t, s.Rewrite(ctx, []worklog.Task{b, a}))
		assert.Equal(t, "02/01/2020,b,2,\n01/01/2020,a,1,\n", readFile(t, s))
	})

	t.Run("empty slice truncates", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,a,1,\n")
		require.NoError(t, s.Rewrite(ctx, nil))
		assert.Empty(t, readFile(t, s))
	})
}

func TestFileStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes only the addressed duplicate", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,same,10,\n02/01/2020,other,5,\n01/01/2020,same,10,\n")

		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.True(t, tasks[0].Equal(tasks[2]))

		require.NoError(t, s.Delete(ctx, tasks[2]))

		left, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, left, 2)
		assert.Equal(t, "same", left[0].Description)
		assert.Equal(t, "other", left[1].Description)
	})

	t.Run("stale target is rejected", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,a,10,\n")
		tasks, err := s.ReadAll(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(s.Path(), []byte("01/01/2020,changed,10,\n"), 0o600))

		err = s.Delete(ctx, tasks[0])
		require.ErrorIs(t, err, wlerrors.ErrTaskChanged)
		assert.Equal(t, "01/01/2020,changed,10,\n", readFile(t, s))
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t, "01/01/2020,a,10,\n")

		err := s.Delete(ctx, worklog.Task{ID: 4, Date: date(2020, 1, 1), Description: "a", Minutes: 10})
		require.ErrorIs(t, err, wlerrors.ErrTaskNotFound)

		err = s.Delete(ctx, worklog.Task{Date: date(2020, 1, 1), Description: "a", Minutes: 10})
		require.ErrorIs(t, err, wlerrors.ErrTaskNotFound)
	})
}

func TestFileStore_Replace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t, "01/01/2020,a,10,\n02/01/2020,b,20,\n03/01/2020,c,30,\n")
	tasks, err := s.ReadAll(ctx)
	require.NoError(t, err)

	edited := tasks[0]
	edited.Description = "a (edited)"

	stored, err := s.Replace(ctx, tasks[0], edited)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ID)

	after, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, []string{"b", "c", "a (edited)"},
		[]string{after[0].Description, after[1].Description, after[2].Description})
	assert.Equal(t, stored, after[2])

	t.Run("invalid replacement leaves file alone", func(t *testing.T) {
		before := readFile(t, s)
		bad := after[0]
		bad.Minutes = -3
		_, err := s.Replace(ctx, after[0], bad)
		require.ErrorIs(t, err, wlerrors.ErrInvalidMinutes)
		assert.Equal(t, before, readFile(t, s))
	})
}

func TestFileStore_LockTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t, "")
	s.lockTimeout = 100 * time.Millisecond

	held, err := s.lock(ctx)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	_, err = s.ReadAll(ctx)
	require.ErrorIs(t, err, wlerrors.ErrLockTimeout)
}

func TestFileStore_ReadAllSharesLock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t, "01/01/2020,shared,10,\n")
	s.lockTimeout = 100 * time.Millisecond

	held, err := s.readLock(ctx)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	tasks, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = s.Append(ctx, worklog.Task{Date: date(2020, time.January, 2), Description: "blocked", Minutes: 5})
	require.ErrorIs(t, err, wlerrors.ErrLockTimeout)
}

func TestFileStore_ReadAllReadOnlyDirectory(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	ctx := context.Background()
	s := newTestStore(t, "01/01/2020,read only,10,\n")
	dir := filepath.Dir(s.Path())

	require.NoError(t, os.Chmod(dir, 0o500)) //nolint:gosec // G302: read-only directory under test
	defer func() {
		_ = os.Chmod(dir, 0o700) //nolint:gosec // G302: cleanup after test
	}()

	tasks, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "read only", tasks[0].Description)

	_, statErr := os.Stat(s.Path() + ".lock")
	assert.True(t, os.IsNotExist(statErr), "no sidecar is created")
}
