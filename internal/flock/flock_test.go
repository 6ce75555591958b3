//go:build unix

package flock_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/flock"
)

func TestExclusive(t *testing.T) {
	t.Parallel()

	t.Run("second descriptor cannot lock while held", func(t *testing.T) {
		t.Parallel()
		lockFile := filepath.Join(t.TempDir(), "test.lock")

		f1, err := os.OpenFile(lockFile, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- test code using safe temp dir
		require.NoError(t, err)
		defer func() { _ = f1.Close() }()
		require.NoError(t, flock.Exclusive(f1.Fd()))

		f2, err := os.OpenFile(lockFile, os.O_RDWR, 0o600) // #nosec G304 -- test code using safe temp dir
		require.NoError(t, err)
		defer func() { _ = f2.Close() }()
		require.Error(t, flock.Exclusive(f2.Fd()))

		require.NoError(t, flock.Unlock(f1.Fd()))
		require.NoError(t, flock.Exclusive(f2.Fd()))
		require.NoError(t, flock.Unlock(f2.Fd()))
	})
}

func TestAcquire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates lock file and releases", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "work_log.csv.lock")

		lock, err := flock.Acquire(ctx, path, time.Second)
		require.NoError(t, err)
		_, statErr := os.Stat(path)
		require.NoError(t, statErr)
		require.NoError(t, lock.Release())

		// Release is idempotent.
		require.NoError(t, lock.Release())
	})

	t.Run("times out while another holder keeps the lock", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "held.lock")

		held, err := flock.Acquire(ctx, path, time.Second)
		require.NoError(t, err)
		defer func() { _ = held.Release() }()

		_, err = flock.Acquire(ctx, path, 120*time.Millisecond)
		require.ErrorIs(t, err, wlerrors.ErrLockTimeout)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "canceled.lock")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := flock.Acquire(cctx, path, time.Second)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("shared holders coexist and block exclusive", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "shared.lock")

		r1, err := flock.AcquireShared(ctx, path, time.Second)
		require.NoError(t, err)
		r2, err := flock.AcquireShared(ctx, path, time.Second)
		require.NoError(t, err)

		_, err = flock.Acquire(ctx, path, 120*time.Millisecond)
		require.ErrorIs(t, err, wlerrors.ErrLockTimeout)

		require.NoError(t, r1.Release())
		require.NoError(t, r2.Release())

		w, err := flock.Acquire(ctx, path, time.Second)
		require.NoError(t, err)
		defer func() { _ = w.Release() }()

		_, err = flock.AcquireShared(ctx, path, 120*time.Millisecond)
		require.ErrorIs(t, err, wlerrors.ErrLockTimeout)
	})

	t.Run("shared lock in read-only directory", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o500)) //nolint:gosec // G302: read-only directory under test
		defer func() {
			_ = os.Chmod(dir, 0o700) //nolint:gosec // G302: cleanup after test
		}()

		lock, err := flock.AcquireShared(ctx, filepath.Join(dir, "work_log.csv.lock"), time.Second)
		require.NoError(t, err)
		assert.Nil(t, lock)
		require.NoError(t, lock.Release())
	})

	t.Run("nil lock release", func(t *testing.T) {
		t.Parallel()
		var l *flock.Lock
		assert.NoError(t, l.Release())
	})
}
